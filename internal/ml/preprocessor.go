package ml

import (
	"errors"
	"fmt"

	"house_price/internal/domain"
)

// Preprocessor one-hot encodes the categorical columns and standardizes the
// numeric ones. Output vectors hold the one-hot block first, then the scaled
// numeric block.
type Preprocessor struct {
	Encoder *OneHotEncoder  `json:"encoder"`
	Scaler  *StandardScaler `json:"scaler"`
}

func NewPreprocessor(schema domain.SchemaDescriptor) *Preprocessor {
	return &Preprocessor{
		Encoder: NewOneHotEncoder(schema.Categorical),
		Scaler:  NewStandardScaler(schema.Numeric),
	}
}

func (p *Preprocessor) Fit(records []domain.Record) error {
	if len(records) == 0 {
		return domain.ErrNoTrainingRows
	}
	cats := make([][]string, len(records))
	nums := make([][]float64, len(records))
	for i, r := range records {
		cats[i] = r.Categorical()
		nums[i] = r.Numeric()
	}
	if err := p.Encoder.Fit(cats); err != nil {
		return err
	}
	return p.Scaler.Fit(nums)
}

// prepare rebuilds derived state after decoding.
func (p *Preprocessor) prepare() error {
	if p.Encoder == nil || p.Scaler == nil {
		return errors.New("preprocessor: missing encoder or scaler")
	}
	if err := p.Encoder.build(); err != nil {
		return err
	}
	return p.Scaler.valid()
}

func (p *Preprocessor) Width() int { return p.Encoder.Width() + len(p.Scaler.Columns) }

func (p *Preprocessor) Transform(r domain.Record) ([]float64, error) {
	out := make([]float64, p.Width())
	w := p.Encoder.Width()
	if err := p.Encoder.Transform(r.Categorical(), out[:w]); err != nil {
		return nil, err
	}
	if err := p.Scaler.Transform(r.Numeric(), out[w:]); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Preprocessor) TransformAll(records []domain.Record) ([][]float64, error) {
	out := make([][]float64, len(records))
	for i, r := range records {
		v, err := p.Transform(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
