package ml_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"house_price/internal/domain"
	"house_price/internal/ml"
)

func TestStandardScaler_PopulationStatistics(t *testing.T) {
	s := ml.NewStandardScaler([]string{"a", "b"})
	require.NoError(t, s.Fit([][]float64{{1, 5}, {3, 5}}))

	require.InDeltaSlice(t, []float64{2, 5}, s.Mean, 1e-12)
	// population sd of {1,3} is 1; constant column keeps scale 1
	require.InDeltaSlice(t, []float64{1, 1}, s.Scale, 1e-12)

	dst := make([]float64, 2)
	require.NoError(t, s.Transform([]float64{4, 7}, dst))
	require.InDeltaSlice(t, []float64{2, 2}, dst, 1e-12)
}

func TestStandardScaler_RejectsNonFinite(t *testing.T) {
	s := ml.NewStandardScaler([]string{"bath"})
	require.NoError(t, s.Fit([][]float64{{1}, {2}}))

	err := s.Transform([]float64{math.NaN()}, make([]float64, 1))
	require.ErrorIs(t, err, domain.ErrInvalidField)
}
