package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"house_price/internal/adapters/observability"
	"house_price/internal/domain"
)

const (
	EndpointForm = "form"
	EndpointAPI  = "api"
)

// PredictionService serves predictions from one read-only model. The cache and
// the prediction log are optional; their failures never fail a prediction.
type PredictionService struct {
	model    domain.Model
	cache    domain.Cache
	repo     domain.PredictionRepository
	cacheTTL time.Duration
	options  domain.DropdownOptions
}

func NewPredictionService(m domain.Model, c domain.Cache, repo domain.PredictionRepository, ttl time.Duration) *PredictionService {
	s := &PredictionService{model: m, cache: c, repo: repo, cacheTTL: ttl}
	s.options = dropdownOptions(m)
	if s.options.Degraded() {
		log.Warn().Str("reason", s.options.Reason).Msg("dropdown options degraded; using fallback lists")
	}
	observability.SetDropdownDegraded(s.options.Degraded())
	observability.SetModelInfo(m.ID())
	return s
}

func (s *PredictionService) ModelID() string { return s.model.ID() }

// Options returns the dropdown options computed at construction.
func (s *PredictionService) Options() domain.DropdownOptions { return s.options }

type cachedPrediction struct {
	Prediction float64 `json:"prediction"`
}

func (s *PredictionService) Predict(ctx context.Context, endpoint string, rec domain.Record) (float64, error) {
	start := time.Now()
	p, err := s.predict(ctx, rec)
	observability.ObservePrediction(endpoint, err, time.Since(start))
	if err != nil {
		return 0, err
	}
	s.logPrediction(ctx, endpoint, rec, p)
	return p, nil
}

func (s *PredictionService) predict(ctx context.Context, rec domain.Record) (float64, error) {
	key := s.cacheKey(rec)
	if s.cache != nil && key != "" {
		var hit cachedPrediction
		if ok, err := s.cache.Get(ctx, key, &hit); err != nil {
			log.Warn().Err(err).Msg("prediction cache read failed")
		} else if ok {
			return hit.Prediction, nil
		}
	}

	out, err := s.model.Predict(ctx, []domain.Record{rec})
	if err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("model returned %d predictions for 1 record", len(out))
	}

	if s.cache != nil && key != "" {
		if err := s.cache.Set(ctx, key, cachedPrediction{Prediction: out[0]}, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Msg("prediction cache write failed")
		}
	}
	return out[0], nil
}

// cacheKey scopes entries to the loaded artifact so a retrained model never
// serves another model's answers. Records with non-finite numbers get no key;
// the model rejects them anyway.
func (s *PredictionService) cacheKey(rec domain.Record) string {
	for _, v := range rec.Numeric() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
	}
	body, err := json.Marshal(rec)
	if err != nil {
		log.Debug().Err(err).Msg("record not cacheable")
		return ""
	}
	sum := sha1.Sum(body)
	return fmt.Sprintf("prediction:%s:%s", s.model.ID(), hex.EncodeToString(sum[:]))
}

func (s *PredictionService) logPrediction(ctx context.Context, endpoint string, rec domain.Record, p float64) {
	if s.repo == nil {
		return
	}
	err := s.repo.InsertPrediction(ctx, domain.PredictionLog{
		ArtifactID: s.model.ID(),
		Endpoint:   endpoint,
		Record:     rec,
		Prediction: p,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		observability.ObserveStorageError("insert_prediction", err)
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("prediction log write failed")
	}
}

// RecentPredictions lists logged predictions, newest first. It returns
// domain.ErrNotFound when no prediction log is configured.
func (s *PredictionService) RecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	if s.repo == nil {
		return nil, domain.ErrNotFound
	}
	out, err := s.repo.ListPredictions(ctx, limit)
	if err != nil {
		observability.ObserveStorageError("list_predictions", err)
		return nil, err
	}
	return out, nil
}

// RoundPrediction rounds half away from zero to two decimals.
func RoundPrediction(p float64) float64 { return math.Round(p*100) / 100 }

// dropdownOptions reads the model's learned categories. Any failure, including
// a panic from a mismatched pipeline, yields the fallback lists.
func dropdownOptions(m domain.Model) (opts domain.DropdownOptions) {
	src, ok := m.(domain.CategorySource)
	if !ok {
		return domain.FallbackOptions("model does not expose its categories")
	}
	defer func() {
		if r := recover(); r != nil {
			opts = domain.FallbackOptions(fmt.Sprintf("category introspection panicked: %v", r))
		}
	}()
	cats, err := src.Categories()
	if err != nil {
		return domain.FallbackOptions(err.Error())
	}
	if want := len(domain.Schema.Categorical); len(cats) != want {
		return domain.FallbackOptions(fmt.Sprintf("model has %d categorical features, want %d", len(cats), want))
	}
	return domain.DropdownOptions{Source: domain.OptionsFromModel, Lists: cats}
}
