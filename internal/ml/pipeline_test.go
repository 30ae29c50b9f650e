package ml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"house_price/internal/domain"
	"house_price/internal/ml"
)

func fittedPipeline(t *testing.T) *ml.Pipeline {
	t.Helper()
	records, targets := housingSamples()
	p := ml.DefaultForestParams()
	p.Trees = 25
	pl := ml.NewPipeline(domain.Schema, p)
	require.NoError(t, pl.Fit(context.Background(), records, targets))
	return pl
}

func TestPipeline_PredictIsDeterministic(t *testing.T) {
	pl := fittedPipeline(t)
	rec := domain.Record{
		AreaType: "Built-up Area", Availability: "Ready To Move", Location: "Whitefield",
		Size: "2 BHK", Society: "GreenVille", TotalSqft: 1200, Bath: 2, Balcony: 1,
	}

	first, err := pl.Predict(context.Background(), []domain.Record{rec})
	require.NoError(t, err)
	second, err := pl.Predict(context.Background(), []domain.Record{rec})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, first, second)
	require.Greater(t, first[0], 0.0)
}

func TestPipeline_UnknownLocationStillPredicts(t *testing.T) {
	pl := fittedPipeline(t)
	rec := domain.Record{Location: "Nowhere Nagar", Size: "9 BHK", TotalSqft: 900, Bath: 1}

	out, err := pl.Predict(context.Background(), []domain.Record{rec})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestPipeline_Categories(t *testing.T) {
	pl := fittedPipeline(t)
	cats, err := pl.Categories()
	require.NoError(t, err)
	require.Len(t, cats, len(domain.Schema.Categorical))
	require.Equal(t, []string{"Hebbal", "Kothanur", "Uttarahalli", "Whitefield"}, cats[2])

	// copies, not views
	cats[2][0] = "changed"
	again, _ := pl.Categories()
	require.Equal(t, "Hebbal", again[2][0])
}

func TestPipeline_Unfitted(t *testing.T) {
	pl := ml.NewPipeline(domain.Schema, ml.DefaultForestParams())
	_, err := pl.Predict(context.Background(), []domain.Record{{}})
	require.ErrorIs(t, err, domain.ErrNotFitted)
	require.ErrorIs(t, pl.Fit(context.Background(), nil, nil), domain.ErrNoTrainingRows)
}
