package domain

import (
	"context"
	"time"
)

// Model is a fitted, read-only pipeline. Implementations must be safe for
// concurrent Predict calls.
type Model interface {
	ID() string
	Predict(ctx context.Context, records []Record) ([]float64, error)
}

// CategorySource is implemented by models that can report the categories their
// encoder learned, one list per categorical feature.
type CategorySource interface {
	Categories() ([][]string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type PredictionRepository interface {
	InsertPrediction(ctx context.Context, p PredictionLog) error
	ListPredictions(ctx context.Context, limit int) ([]PredictionLog, error)
}

type PredictionLog struct {
	ID         int64     `json:"id"`
	ArtifactID string    `json:"artifact_id"`
	Endpoint   string    `json:"endpoint"` // form|api
	Record     Record    `json:"record"`
	Prediction float64   `json:"prediction"`
	CreatedAt  time.Time `json:"created_at"`
}
