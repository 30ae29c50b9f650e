package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"house_price/internal/adapters/observability"
	"house_price/internal/app"
	"house_price/internal/ml"
	"house_price/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "trainer")

	forest := ml.DefaultForestParams()
	forest.Trees = cfg.TrainTrees
	forest.Seed = cfg.TrainSeed
	forest.Workers = cfg.TrainWorkers
	forest.Tree.MaxDepth = cfg.TrainMaxDepth
	if cfg.TrainMinSamplesLeaf > 0 {
		forest.Tree.MinSamplesLeaf = cfg.TrainMinSamplesLeaf
	}

	log.Info().
		Str("data", cfg.DataPath).
		Str("out", cfg.PipelinePath).
		Int("trees", forest.Trees).
		Int64("seed", forest.Seed).
		Int("workers", forest.Workers).
		Msg("trainer starting")

	res, err := app.NewTrainingService(app.TrainingConfig{
		DataPath:     cfg.DataPath,
		PipelinePath: cfg.PipelinePath,
		TestRatio:    cfg.TrainTestRatio,
		Forest:       forest,
	}).Train(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	log.Info().
		Str("artifact_id", res.ArtifactID).
		Str("path", res.Path).
		Int("train_rows", res.TrainRows).
		Int("test_rows", res.TestRows).
		Dur("duration", res.Duration).
		Msg("pipeline saved")
}
