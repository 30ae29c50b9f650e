package ml

import (
	"errors"
	"fmt"
)

// featureMatrix is a read-only, column-oriented copy of the training rows,
// shared by every tree of a forest. Columns holding only 0 and 1 (the one-hot
// block) are indicators: each row lists the indicators it has set. Every other
// column is stored densely, one slice per column.
type featureMatrix struct {
	rows, cols int
	indicator  []bool
	dense      [][]float64 // nil for indicator columns
	denseCols  []int
	ones       [][]int32 // per row, ascending
}

func newFeatureMatrix(x [][]float64) (*featureMatrix, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, errors.New("features empty")
	}
	cols := len(x[0])
	indicator := make([]bool, cols)
	for j := range indicator {
		indicator[j] = true
	}
	for i, row := range x {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if v != 0 && v != 1 {
				indicator[j] = false
			}
		}
	}

	m := &featureMatrix{
		rows:      len(x),
		cols:      cols,
		indicator: indicator,
		dense:     make([][]float64, cols),
		ones:      make([][]int32, len(x)),
	}
	for j, ind := range indicator {
		if !ind {
			m.denseCols = append(m.denseCols, j)
			m.dense[j] = make([]float64, len(x))
		}
	}
	for i, row := range x {
		for _, j := range m.denseCols {
			m.dense[j][i] = row[j]
		}
		var set []int32
		for j, v := range row {
			if v == 1 && indicator[j] {
				set = append(set, int32(j))
			}
		}
		m.ones[i] = set
	}
	return m, nil
}

func (m *featureMatrix) at(row, col int) float64 {
	if d := m.dense[col]; d != nil {
		return d[row]
	}
	for _, j := range m.ones[row] {
		if int(j) == col {
			return 1
		}
		if int(j) > col {
			break
		}
	}
	return 0
}
