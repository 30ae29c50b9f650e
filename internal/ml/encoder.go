package ml

import (
	"errors"
	"fmt"
	"sort"
)

// OneHotEncoder maps each categorical column to a block of indicator columns.
// Values not seen during Fit (including the empty value) encode to all zeros.
type OneHotEncoder struct {
	Columns    []string   `json:"columns"`
	Categories [][]string `json:"categories"`

	index  []map[string]int
	offset []int
	width  int
}

func NewOneHotEncoder(columns []string) *OneHotEncoder {
	return &OneHotEncoder{Columns: append([]string(nil), columns...)}
}

func (e *OneHotEncoder) Fit(rows [][]string) error {
	if len(rows) == 0 {
		return errors.New("encoder: no rows to fit")
	}
	seen := make([]map[string]struct{}, len(e.Columns))
	for j := range seen {
		seen[j] = make(map[string]struct{})
	}
	for i, row := range rows {
		if len(row) != len(e.Columns) {
			return fmt.Errorf("encoder: row %d has %d values, want %d", i, len(row), len(e.Columns))
		}
		for j, v := range row {
			// a null (empty) value is not a category of its own: it encodes to all zeros
			if v == "" {
				continue
			}
			seen[j][v] = struct{}{}
		}
	}
	e.Categories = make([][]string, len(e.Columns))
	for j, set := range seen {
		cats := make([]string, 0, len(set))
		for v := range set {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.Categories[j] = cats
	}
	return e.build()
}

// build derives the lookup tables from Categories. It runs after Fit and after
// the encoder is decoded from an artifact.
func (e *OneHotEncoder) build() error {
	if len(e.Categories) != len(e.Columns) {
		return fmt.Errorf("encoder: %d category lists for %d columns", len(e.Categories), len(e.Columns))
	}
	e.index = make([]map[string]int, len(e.Columns))
	e.offset = make([]int, len(e.Columns))
	width := 0
	for j, cats := range e.Categories {
		e.offset[j] = width
		m := make(map[string]int, len(cats))
		for k, c := range cats {
			m[c] = k
		}
		e.index[j] = m
		width += len(cats)
	}
	e.width = width
	return nil
}

func (e *OneHotEncoder) Width() int { return e.width }

// Transform writes the encoding of row into dst, which must be Width() long.
func (e *OneHotEncoder) Transform(row []string, dst []float64) error {
	if e.index == nil {
		return errors.New("encoder: not fitted")
	}
	if len(row) != len(e.Columns) {
		return fmt.Errorf("encoder: got %d values, want %d", len(row), len(e.Columns))
	}
	if len(dst) != e.width {
		return fmt.Errorf("encoder: dst has %d slots, want %d", len(dst), e.width)
	}
	for i := range dst {
		dst[i] = 0
	}
	for j, v := range row {
		if k, ok := e.index[j][v]; ok {
			dst[e.offset[j]+k] = 1
		}
	}
	return nil
}
