package ml

import (
	"context"
	"errors"
	"fmt"

	"house_price/internal/domain"
)

// Pipeline chains the preprocessor and the forest into one fit/predict unit.
type Pipeline struct {
	Preprocessor *Preprocessor         `json:"preprocessor"`
	Model        *RandomForestRegressor `json:"model"`
}

func NewPipeline(schema domain.SchemaDescriptor, p ForestParams) *Pipeline {
	return &Pipeline{
		Preprocessor: NewPreprocessor(schema),
		Model:        NewRandomForestRegressor(p),
	}
}

func (p *Pipeline) Fit(ctx context.Context, records []domain.Record, targets []float64) error {
	if len(records) == 0 {
		return domain.ErrNoTrainingRows
	}
	if len(records) != len(targets) {
		return errors.New("records and targets size mismatch")
	}
	if err := p.Preprocessor.Fit(records); err != nil {
		return fmt.Errorf("fit preprocessor: %w", err)
	}
	x, err := p.Preprocessor.TransformAll(records)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if err := p.Model.Fit(ctx, x, targets); err != nil {
		return fmt.Errorf("fit forest: %w", err)
	}
	return nil
}

func (p *Pipeline) Predict(ctx context.Context, records []domain.Record) ([]float64, error) {
	if p.Preprocessor == nil || p.Model == nil || len(p.Model.Trees) == 0 {
		return nil, domain.ErrNotFitted
	}
	out := make([]float64, len(records))
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x, err := p.Preprocessor.Transform(r)
		if err != nil {
			return nil, err
		}
		v, err := p.Model.Predict(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Categories returns a copy of the encoder's learned categories per column.
func (p *Pipeline) Categories() ([][]string, error) {
	if p.Preprocessor == nil || p.Preprocessor.Encoder == nil || p.Preprocessor.Encoder.Categories == nil {
		return nil, domain.ErrNotFitted
	}
	src := p.Preprocessor.Encoder.Categories
	out := make([][]string, len(src))
	for i, c := range src {
		out[i] = append([]string(nil), c...)
	}
	return out, nil
}

func (p *Pipeline) prepare() error {
	if p.Preprocessor == nil || p.Model == nil {
		return errors.New("pipeline: missing stage")
	}
	if err := p.Preprocessor.prepare(); err != nil {
		return err
	}
	if err := p.Model.validate(); err != nil {
		return err
	}
	if w := p.Preprocessor.Width(); w != p.Model.Features {
		return fmt.Errorf("pipeline: preprocessor emits %d features, model expects %d", w, p.Model.Features)
	}
	return nil
}
