package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"house_price/internal/domain"
)

// StandardScaler centers each column on its training mean and divides by the
// population standard deviation. Constant columns keep a scale of 1.
type StandardScaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

func NewStandardScaler(columns []string) *StandardScaler {
	return &StandardScaler{Columns: append([]string(nil), columns...)}
}

func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return errors.New("scaler: no rows to fit")
	}
	cols := len(s.Columns)
	s.Mean = make([]float64, cols)
	s.Scale = make([]float64, cols)
	col := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i, row := range rows {
			if len(row) != cols {
				return fmt.Errorf("scaler: row %d has %d values, want %d", i, len(row), cols)
			}
			if !finite(row[j]) {
				return fmt.Errorf("scaler: row %d: %w %s", i, domain.ErrInvalidField, s.Columns[j])
			}
			col[i] = row[j]
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		s.Mean[j] = mean
		s.Scale[j] = scaleFor(variance)
	}
	return nil
}

func scaleFor(variance float64) float64 {
	sd := math.Sqrt(variance)
	if sd == 0 || math.IsNaN(sd) {
		return 1
	}
	return sd
}

func (s *StandardScaler) valid() error {
	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return errors.New("scaler: statistics do not match columns")
	}
	for _, sc := range s.Scale {
		if sc == 0 || !finite(sc) {
			return errors.New("scaler: invalid scale")
		}
	}
	return nil
}

// Transform writes the scaled row into dst, which must be len(Columns) long.
func (s *StandardScaler) Transform(row []float64, dst []float64) error {
	if s.Mean == nil {
		return errors.New("scaler: not fitted")
	}
	if len(row) != len(s.Columns) || len(dst) != len(s.Columns) {
		return fmt.Errorf("scaler: got %d values, want %d", len(row), len(s.Columns))
	}
	for j, v := range row {
		if !finite(v) {
			return fmt.Errorf("%w: %s is not a finite number", domain.ErrInvalidField, s.Columns[j])
		}
		dst[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
