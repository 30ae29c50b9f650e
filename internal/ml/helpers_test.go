package ml_test

import (
	"house_price/internal/domain"
)

// housingSamples is a small, hand-made training set: price grows with area and
// with the Whitefield location.
func housingSamples() ([]domain.Record, []float64) {
	rows := []struct {
		loc, size string
		sqft      float64
		bath      float64
		balcony   float64
		price     float64
	}{
		{"Whitefield", "2 BHK", 1200, 2, 1, 80},
		{"Whitefield", "3 BHK", 1600, 3, 2, 110},
		{"Whitefield", "2 BHK", 1100, 2, 1, 75},
		{"Hebbal", "2 BHK", 1150, 2, 1, 60},
		{"Hebbal", "3 BHK", 1500, 3, 2, 85},
		{"Kothanur", "1 BHK", 600, 1, 0, 30},
		{"Kothanur", "2 BHK", 1000, 2, 1, 45},
		{"Uttarahalli", "1 BHK", 650, 1, 1, 32},
		{"Uttarahalli", "3 BHK", 1400, 2, 2, 65},
		{"Hebbal", "4 BHK", 2400, 4, 3, 190},
	}
	records := make([]domain.Record, len(rows))
	targets := make([]float64, len(rows))
	for i, r := range rows {
		records[i] = domain.Record{
			AreaType:     "Super built-up Area",
			Availability: "Ready To Move",
			Location:     r.loc,
			Size:         r.size,
			Society:      "GreenVille",
			TotalSqft:    r.sqft,
			Bath:         r.bath,
			Balcony:      r.balcony,
		}
		targets[i] = r.price
	}
	return records, targets
}
