package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"house_price/internal/dataset"
	"house_price/internal/domain"
	"house_price/internal/ml"
)

type TrainingConfig struct {
	DataPath     string
	PipelinePath string
	TestRatio    float64
	Forest       ml.ForestParams
}

type TrainingResult struct {
	Report     dataset.Report
	TrainRows  int
	TestRows   int
	ArtifactID string
	Path       string
	Duration   time.Duration
}

type TrainingService struct {
	cfg TrainingConfig
}

func NewTrainingService(cfg TrainingConfig) *TrainingService {
	return &TrainingService{cfg: cfg}
}

// Train loads and cleans the dataset, fits the pipeline on the training split
// and writes the artifact. The test split is held out but not evaluated.
func (s *TrainingService) Train(ctx context.Context) (TrainingResult, error) {
	start := time.Now()

	samples, rep, err := dataset.LoadFile(s.cfg.DataPath)
	if err != nil {
		return TrainingResult{}, err
	}
	log.Info().
		Int("read", rep.RowsRead).
		Int("dropped_null", rep.DroppedNull).
		Int("dropped_coerce", rep.DroppedCoerce).
		Int("kept", rep.RowsKept).
		Msg("dataset cleaned")
	if len(samples) == 0 {
		return TrainingResult{Report: rep}, fmt.Errorf("%w: %s", domain.ErrNoTrainingRows, s.cfg.DataPath)
	}

	train, test := dataset.Split(samples, s.cfg.TestRatio, s.cfg.Forest.Seed)
	x, y := dataset.XY(train)

	log.Info().
		Int("train", len(train)).
		Int("test", len(test)).
		Int("trees", s.cfg.Forest.Trees).
		Msg("training model")
	pipeline := ml.NewPipeline(domain.Schema, s.cfg.Forest)
	if err := pipeline.Fit(ctx, x, y); err != nil {
		return TrainingResult{Report: rep}, err
	}

	art := ml.NewArtifact(pipeline, len(train))
	if err := art.Save(s.cfg.PipelinePath); err != nil {
		return TrainingResult{Report: rep}, fmt.Errorf("save pipeline: %w", err)
	}

	return TrainingResult{
		Report:     rep,
		TrainRows:  len(train),
		TestRows:   len(test),
		ArtifactID: art.ID(),
		Path:       s.cfg.PipelinePath,
		Duration:   time.Since(start),
	}, nil
}
