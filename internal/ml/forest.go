package ml

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/floats"
)

type ForestParams struct {
	Trees     int        `json:"trees"`
	Seed      int64      `json:"seed"`
	Bootstrap bool       `json:"bootstrap"`
	Tree      TreeParams `json:"tree"`

	// Workers bounds parallel tree fitting; it does not affect the result.
	Workers int `json:"-"`
}

func DefaultForestParams() ForestParams {
	return ForestParams{
		Trees:     100,
		Seed:      42,
		Bootstrap: true,
		Tree:      TreeParams{MinSamplesSplit: 2, MinSamplesLeaf: 1},
	}
}

// RandomForestRegressor averages bootstrap-trained regression trees.
type RandomForestRegressor struct {
	Params   ForestParams      `json:"params"`
	Features int               `json:"features"`
	Trees    []*RegressionTree `json:"trees"`
}

func NewRandomForestRegressor(p ForestParams) *RandomForestRegressor {
	if p.Trees <= 0 {
		p.Trees = 100
	}
	return &RandomForestRegressor{Params: p}
}

// Fit trains every tree on one shared column-oriented copy of x. Per-tree
// seeds are drawn from Params.Seed up front so the fitted forest is the same
// for any worker count.
func (f *RandomForestRegressor) Fit(ctx context.Context, x [][]float64, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return errors.New("features or targets empty")
	}
	if len(x) != len(y) {
		return errors.New("features and targets size mismatch")
	}
	m, err := newFeatureMatrix(x)
	if err != nil {
		return err
	}
	p := f.Params
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	master := rand.New(rand.NewSource(p.Seed))
	seeds := make([]int64, p.Trees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	trees := make([]*RegressionTree, p.Trees)
	sem := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)

	var acquireErr error
	for i := range trees {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(gctx, 1); err != nil {
			acquireErr = err
			break
		}
		i := i
		g.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seeds[i]))
			t := &RegressionTree{}
			if err := t.fit(m, y, drawSample(m.rows, p.Bootstrap, rng), p.Tree, rng); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if acquireErr != nil {
		return acquireErr
	}

	f.Features = m.cols
	f.Trees = trees
	return nil
}

func drawSample(n int, bootstrap bool, rng *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		if bootstrap {
			out[i] = rng.Intn(n)
		} else {
			out[i] = i
		}
	}
	return out
}

// Predict returns the mean of the trees' predictions. It only reads the
// forest and is safe for concurrent use.
func (f *RandomForestRegressor) Predict(features []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, errors.New("model not trained")
	}
	if len(features) != f.Features {
		return 0, fmt.Errorf("got %d features, want %d", len(features), f.Features)
	}
	preds := make([]float64, len(f.Trees))
	for i, t := range f.Trees {
		v, err := t.Predict(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		preds[i] = v
	}
	return floats.Sum(preds) / float64(len(preds)), nil
}

func (f *RandomForestRegressor) validate() error {
	if len(f.Trees) == 0 {
		return errors.New("forest has no trees")
	}
	for i, t := range f.Trees {
		if t == nil {
			return fmt.Errorf("tree %d missing", i)
		}
		if err := t.validate(f.Features); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}
