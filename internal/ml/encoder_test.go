package ml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"house_price/internal/ml"
)

func TestOneHotEncoder_FitSortsAndSkipsEmpty(t *testing.T) {
	enc := ml.NewOneHotEncoder([]string{"location", "size"})
	err := enc.Fit([][]string{
		{"Whitefield", "2 BHK"},
		{"Hebbal", ""},
		{"Whitefield", "1 BHK"},
	})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Hebbal", "Whitefield"}, {"1 BHK", "2 BHK"}}, enc.Categories)
	require.Equal(t, 4, enc.Width())

	dst := make([]float64, enc.Width())
	require.NoError(t, enc.Transform([]string{"Whitefield", "1 BHK"}, dst))
	require.Equal(t, []float64{0, 1, 1, 0}, dst)
}

func TestOneHotEncoder_UnknownEncodesToZeros(t *testing.T) {
	enc := ml.NewOneHotEncoder([]string{"location"})
	require.NoError(t, enc.Fit([][]string{{"Hebbal"}, {"Whitefield"}}))

	dst := []float64{7, 7}
	require.NoError(t, enc.Transform([]string{"Atlantis"}, dst))
	require.Equal(t, []float64{0, 0}, dst)

	require.NoError(t, enc.Transform([]string{""}, dst))
	require.Equal(t, []float64{0, 0}, dst)
}

func TestOneHotEncoder_Errors(t *testing.T) {
	enc := ml.NewOneHotEncoder([]string{"location"})
	require.Error(t, enc.Transform([]string{"x"}, nil), "transform before fit")
	require.Error(t, enc.Fit(nil))
	require.Error(t, enc.Fit([][]string{{"a", "b"}}))
}
