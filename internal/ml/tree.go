package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// TreeParams controls how far a tree grows. Zero MaxDepth means unlimited and
// zero MaxFeatures means every feature is tried at each split.
type TreeParams struct {
	MaxDepth        int `json:"max_depth"`
	MinSamplesSplit int `json:"min_samples_split"`
	MinSamplesLeaf  int `json:"min_samples_leaf"`
	MaxFeatures     int `json:"max_features"`
}

func (p TreeParams) withDefaults() TreeParams {
	if p.MinSamplesLeaf <= 0 {
		p.MinSamplesLeaf = 1
	}
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = 2
	}
	return p
}

// TreeNode is stored in a flat slice; Left and Right are absolute indices.
type TreeNode struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v"`
	Leaf      bool    `json:"leaf,omitempty"`
}

// RegressionTree is a CART tree split on squared error. Leaves predict the
// mean target of their training rows.
type RegressionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Fit grows the tree on the rows of x named by sample (repeats allowed).
func (t *RegressionTree) Fit(x [][]float64, y []float64, sample []int, p TreeParams, rng *rand.Rand) error {
	if len(x) != len(y) {
		return errors.New("features and targets size mismatch")
	}
	m, err := newFeatureMatrix(x)
	if err != nil {
		return err
	}
	return t.fit(m, y, sample, p, rng)
}

func (t *RegressionTree) fit(m *featureMatrix, y []float64, sample []int, p TreeParams, rng *rand.Rand) error {
	if len(y) == 0 || m.rows != len(y) {
		return errors.New("features and targets size mismatch")
	}
	if len(sample) == 0 {
		return errors.New("empty sample")
	}
	b := &treeBuilder{
		m:       m,
		y:       y,
		p:       p.withDefaults(),
		rng:     rng,
		pairs:   make([]valuePair, len(sample)),
		count:   make([]int, m.cols),
		sumOnes: make([]float64, m.cols),
	}
	b.grow(append([]int(nil), sample...), 0)
	t.Nodes = b.nodes
	return nil
}

func (t *RegressionTree) Predict(features []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, errors.New("model not trained")
	}
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx <= 0 || idx >= len(t.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func (t *RegressionTree) validate(nFeatures int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: bad children", i)
		}
	}
	return nil
}

type valuePair struct{ v, y float64 }

// indicatorThreshold splits 0/1 columns: zeros go left.
const indicatorThreshold = 0.5

type treeBuilder struct {
	m     *featureMatrix
	y     []float64
	p     TreeParams
	rng   *rand.Rand
	nodes []TreeNode
	pairs []valuePair

	// per-node tallies for indicator columns, reset after each node
	count   []int
	sumOnes []float64
	touched []int32
	allowed []bool
}

func (b *treeBuilder) grow(idx []int, depth int) int {
	id := len(b.nodes)
	var sum float64
	for _, i := range idx {
		sum += b.y[i]
	}
	mean := sum / float64(len(idx))
	b.nodes = append(b.nodes, TreeNode{Feature: -1, Value: mean, Leaf: true})

	if len(idx) < b.p.MinSamplesSplit || len(idx) < 2*b.p.MinSamplesLeaf {
		return id
	}
	if b.p.MaxDepth > 0 && depth >= b.p.MaxDepth {
		return id
	}
	if b.constantTarget(idx) {
		return id
	}
	feature, threshold, ok := b.bestSplit(idx, sum)
	if !ok {
		return id
	}

	// partition idx in place: rows going left first
	k := 0
	for j, i := range idx {
		if b.m.at(i, feature) <= threshold {
			idx[k], idx[j] = idx[j], idx[k]
			k++
		}
	}
	if k == 0 || k == len(idx) {
		return id
	}
	left := b.grow(idx[:k], depth+1)
	right := b.grow(idx[k:], depth+1)
	b.nodes[id] = TreeNode{Feature: feature, Threshold: threshold, Left: left, Right: right, Value: mean}
	return id
}

func (b *treeBuilder) constantTarget(idx []int) bool {
	first := b.y[idx[0]]
	for _, i := range idx[1:] {
		if b.y[i] != first {
			return false
		}
	}
	return true
}

// candidateMask returns nil when every feature may be tried at this node.
func (b *treeBuilder) candidateMask() []bool {
	cols := b.m.cols
	if b.p.MaxFeatures <= 0 || b.p.MaxFeatures >= cols {
		return nil
	}
	if b.allowed == nil {
		b.allowed = make([]bool, cols)
	}
	for j := range b.allowed {
		b.allowed[j] = false
	}
	for _, j := range b.rng.Perm(cols)[:b.p.MaxFeatures] {
		b.allowed[j] = true
	}
	return b.allowed
}

// bestSplit maximizes sumL²/nL + sumR²/nR, which is equivalent to minimizing
// the children's summed squared error. Ties go to the lowest feature index.
// Indicator columns are only visited when some row of the node sets them, so
// the cost per node follows the rows, not the vocabulary size.
func (b *treeBuilder) bestSplit(idx []int, total float64) (int, float64, bool) {
	n := len(idx)
	minLeaf := b.p.MinSamplesLeaf
	bestScore := math.Inf(-1)
	bestFeature := -1
	bestThreshold := 0.0

	consider := func(feature int, sumL float64, nl int, threshold float64) {
		nr := n - nl
		if nl < minLeaf || nr < minLeaf {
			return
		}
		sumR := total - sumL
		score := sumL*sumL/float64(nl) + sumR*sumR/float64(nr)
		if score > bestScore || (score == bestScore && feature < bestFeature) {
			bestScore = score
			bestFeature = feature
			bestThreshold = threshold
		}
	}
	allowed := b.candidateMask()

	touched := b.touched[:0]
	for _, i := range idx {
		for _, f := range b.m.ones[i] {
			if b.count[f] == 0 {
				touched = append(touched, f)
			}
			b.count[f]++
			b.sumOnes[f] += b.y[i]
		}
	}
	for _, f := range touched {
		if c := b.count[f]; c < n && (allowed == nil || allowed[f]) {
			consider(int(f), total-b.sumOnes[f], n-c, indicatorThreshold)
		}
		b.count[f] = 0
		b.sumOnes[f] = 0
	}
	b.touched = touched[:0]

	pairs := b.pairs[:n]
	for _, f := range b.m.denseCols {
		if allowed != nil && !allowed[f] {
			continue
		}
		col := b.m.dense[f]
		lo, hi := math.Inf(1), math.Inf(-1)
		for k, i := range idx {
			v := col[i]
			pairs[k] = valuePair{v: v, y: b.y[i]}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if lo == hi {
			continue
		}

		if twoValued(pairs, lo, hi) {
			var sumL float64
			nl := 0
			for _, pr := range pairs {
				if pr.v == lo {
					sumL += pr.y
					nl++
				}
			}
			consider(f, sumL, nl, midpoint(lo, hi))
			continue
		}

		sort.Slice(pairs, func(a, c int) bool { return pairs[a].v < pairs[c].v })
		var sumL float64
		for k := 0; k < n-1; k++ {
			sumL += pairs[k].y
			if pairs[k].v == pairs[k+1].v {
				continue
			}
			consider(f, sumL, k+1, midpoint(pairs[k].v, pairs[k+1].v))
		}
	}
	if bestFeature < 0 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func twoValued(pairs []valuePair, lo, hi float64) bool {
	for _, pr := range pairs {
		if pr.v != lo && pr.v != hi {
			return false
		}
	}
	return true
}

func midpoint(a, b float64) float64 {
	m := a + (b-a)/2
	if m >= b {
		return a
	}
	return m
}
