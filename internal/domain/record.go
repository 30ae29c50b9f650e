package domain

// SchemaDescriptor names the feature columns shared by the trainer and the
// prediction service. It is persisted with every artifact and compared on load.
type SchemaDescriptor struct {
	Version     int      `json:"version"`
	Categorical []string `json:"categorical"`
	Numeric     []string `json:"numeric"`
	Target      string   `json:"target"`
}

var Schema = SchemaDescriptor{
	Version:     1,
	Categorical: []string{"area_type", "availability", "location", "size", "society"},
	Numeric:     []string{"total_sqft", "bath", "balcony"},
	Target:      "price",
}

// Equal reports whether two descriptors describe the same feature layout.
func (s SchemaDescriptor) Equal(o SchemaDescriptor) bool {
	if s.Version != o.Version || s.Target != o.Target {
		return false
	}
	return sameStrings(s.Categorical, o.Categorical) && sameStrings(s.Numeric, o.Numeric)
}

// Columns returns every feature column followed by the target.
func (s SchemaDescriptor) Columns() []string {
	out := make([]string, 0, len(s.Categorical)+len(s.Numeric)+1)
	out = append(out, s.Categorical...)
	out = append(out, s.Numeric...)
	return append(out, s.Target)
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Record is one housing sample: a training row or a prediction request.
type Record struct {
	AreaType     string  `json:"area_type"`
	Availability string  `json:"availability"`
	Location     string  `json:"location"`
	Size         string  `json:"size"`
	Society      string  `json:"society"`
	TotalSqft    float64 `json:"total_sqft"`
	Bath         float64 `json:"bath"`
	Balcony      float64 `json:"balcony"`
}

// Categorical returns the categorical values in Schema order.
func (r Record) Categorical() []string {
	return []string{r.AreaType, r.Availability, r.Location, r.Size, r.Society}
}

// Numeric returns the numeric values in Schema order.
func (r Record) Numeric() []float64 {
	return []float64{r.TotalSqft, r.Bath, r.Balcony}
}

// Sample is a Record with its known price.
type Sample struct {
	Record
	Price float64 `json:"price"`
}
