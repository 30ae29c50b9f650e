package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"house_price/internal/domain"
)

// criticalColumns must be non-null for a row to be kept. society is absent on
// purpose: a missing society is carried as the empty category.
var criticalColumns = []string{
	"total_sqft", "bath", "balcony", "price",
	"area_type", "availability", "location", "size",
}

// naValues are the spellings read as missing, as common CSV tooling does.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func isNA(s string) bool {
	_, ok := naValues[strings.TrimSpace(s)]
	return ok
}

// Report counts what each cleaning pass removed.
type Report struct {
	RowsRead      int `json:"rows_read"`
	DroppedNull   int `json:"dropped_null"`
	DroppedCoerce int `json:"dropped_coerce"`
	RowsKept      int `json:"rows_kept"`
}

// LoadFile reads and cleans the dataset at path.
func LoadFile(path string) ([]domain.Sample, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, Report{}, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, path)
		}
		return nil, Report{}, err
	}
	defer f.Close()
	return Load(f)
}

// Load parses CSV rows and applies critical-null filtering, then numeric
// coercion with a second drop pass.
func Load(r io.Reader) ([]domain.Sample, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, Report{}, fmt.Errorf("%w: empty file", domain.ErrMissingColumn)
		}
		return nil, Report{}, fmt.Errorf("read header: %w", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, Report{}, err
	}

	var (
		rep  Report
		raws []map[string]string
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rep, fmt.Errorf("read row %d: %w", rep.RowsRead+1, err)
		}
		rep.RowsRead++
		raws = append(raws, pick(rec, cols))
	}

	// pass 1: critical nulls
	kept := raws[:0]
	for _, row := range raws {
		if hasCriticalNull(row) {
			rep.DroppedNull++
			continue
		}
		kept = append(kept, row)
	}

	// pass 2: numeric coercion
	out := make([]domain.Sample, 0, len(kept))
	for _, row := range kept {
		s, ok := toSample(row)
		if !ok {
			rep.DroppedCoerce++
			continue
		}
		out = append(out, s)
	}
	rep.RowsKept = len(out)
	return out, rep, nil
}

func locateColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	cols := make(map[string]int)
	var missing []string
	for _, c := range domain.Schema.Columns() {
		i, ok := idx[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		cols[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func pick(rec []string, cols map[string]int) map[string]string {
	row := make(map[string]string, len(cols))
	for name, i := range cols {
		if i < len(rec) {
			row[name] = rec[i]
		}
	}
	return row
}

func hasCriticalNull(row map[string]string) bool {
	for _, c := range criticalColumns {
		if isNA(row[c]) {
			return true
		}
	}
	return false
}

// toNumeric treats anything that is not a finite number as missing.
func toNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isNA(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func category(s string) string {
	if isNA(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

func toSample(row map[string]string) (domain.Sample, bool) {
	var nums [4]float64
	for i, c := range []string{"total_sqft", "bath", "balcony", "price"} {
		f, ok := toNumeric(row[c])
		if !ok {
			return domain.Sample{}, false
		}
		nums[i] = f
	}
	return domain.Sample{
		Record: domain.Record{
			AreaType:     category(row["area_type"]),
			Availability: category(row["availability"]),
			Location:     category(row["location"]),
			Size:         category(row["size"]),
			Society:      category(row["society"]),
			TotalSqft:    nums[0],
			Bath:         nums[1],
			Balcony:      nums[2],
		},
		Price: nums[3],
	}, true
}
