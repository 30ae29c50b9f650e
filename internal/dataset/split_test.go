package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"house_price/internal/dataset"
	"house_price/internal/domain"
)

func numbered(n int) []domain.Sample {
	out := make([]domain.Sample, n)
	for i := range out {
		out[i] = domain.Sample{Price: float64(i)}
	}
	return out
}

func TestSplit_SizesAndDeterminism(t *testing.T) {
	train, test := dataset.Split(numbered(10), 0.2, 42)
	require.Len(t, train, 8)
	require.Len(t, test, 2)

	train2, test2 := dataset.Split(numbered(10), 0.2, 42)
	require.Equal(t, train, train2)
	require.Equal(t, test, test2)

	seen := map[float64]bool{}
	for _, s := range append(train, test...) {
		seen[s.Price] = true
	}
	require.Len(t, seen, 10)
}

func TestSplit_TestSizeRoundsUp(t *testing.T) {
	train, test := dataset.Split(numbered(11), 0.2, 42)
	require.Len(t, test, 3)
	require.Len(t, train, 8)
}

func TestSplit_KeepsOneTrainingRow(t *testing.T) {
	train, test := dataset.Split(numbered(1), 0.2, 42)
	require.Len(t, train, 1)
	require.Empty(t, test)

	train, _ = dataset.Split(nil, 0.2, 42)
	require.Empty(t, train)
}

func TestXY(t *testing.T) {
	x, y := dataset.XY([]domain.Sample{{Record: domain.Record{Location: "A"}, Price: 3}})
	require.Equal(t, []domain.Record{{Location: "A"}}, x)
	require.Equal(t, []float64{3}, y)
}
