package ml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureMatrix_SplitsIndicatorAndDenseColumns(t *testing.T) {
	x := [][]float64{
		{1, 0, 0, 2.5, 1},
		{0, 1, 0, -1, 0},
		{0, 0, 1, 0, 1},
	}
	m, err := newFeatureMatrix(x)
	require.NoError(t, err)

	require.Equal(t, []bool{true, true, true, false, true}, m.indicator)
	require.Equal(t, []int{3}, m.denseCols)
	require.Equal(t, []int32{0, 4}, m.ones[0])
	require.Equal(t, []int32{1}, m.ones[1])
	for i, row := range x {
		for j, v := range row {
			require.Equal(t, v, m.at(i, j), "row %d col %d", i, j)
		}
	}
}

func TestFeatureMatrix_RaggedRows(t *testing.T) {
	_, err := newFeatureMatrix([][]float64{{1, 2}, {1}})
	require.Error(t, err)
	_, err = newFeatureMatrix(nil)
	require.Error(t, err)
}
