package app

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"house_price/internal/domain"
)

/********** form input **********/

// RecordFromForm builds a Record from submitted form fields. Missing or empty
// numeric fields default to 0.
func RecordFromForm(form url.Values) (domain.Record, error) {
	rec := domain.Record{
		AreaType:     strings.TrimSpace(form.Get("area_type")),
		Availability: strings.TrimSpace(form.Get("availability")),
		Location:     strings.TrimSpace(form.Get("location")),
		Size:         strings.TrimSpace(form.Get("size")),
		Society:      strings.TrimSpace(form.Get("society")),
	}
	nums := []*float64{&rec.TotalSqft, &rec.Bath, &rec.Balcony}
	for i, name := range domain.Schema.Numeric {
		v, err := formFloat(form, name)
		if err != nil {
			return domain.Record{}, err
		}
		*nums[i] = v
	}
	return rec, nil
}

func formFloat(form url.Values, name string) (float64, error) {
	s := strings.TrimSpace(form.Get(name))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidField, name)
	}
	return f, nil
}

/********** JSON input **********/

// RecordFromJSON coerces a decoded JSON object into a Record. Numeric fields
// accept numbers or numeric strings; a missing numeric field is an error.
// Categorical fields accept strings or numbers; missing ones stay empty and
// encode as an unknown category.
func RecordFromJSON(m map[string]any) (domain.Record, error) {
	var rec domain.Record
	strs := []*string{&rec.AreaType, &rec.Availability, &rec.Location, &rec.Size, &rec.Society}
	for i, name := range domain.Schema.Categorical {
		s, err := flexibleString(m, name)
		if err != nil {
			return domain.Record{}, err
		}
		*strs[i] = s
	}
	nums := []*float64{&rec.TotalSqft, &rec.Bath, &rec.Balcony}
	for i, name := range domain.Schema.Numeric {
		f, err := flexibleFloat(m, name)
		if err != nil {
			return domain.Record{}, err
		}
		*nums[i] = f
	}
	return rec, nil
}

// flexibleFloat: number from float64/json.Number/int/numeric string.
func flexibleFloat(m map[string]any, key string) (float64, error) {
	switch v := m[key].(type) {
	case nil:
		return 0, fmt.Errorf("%w: %s", domain.ErrMissingField, key)
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s", domain.ErrInvalidField, key)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not a number", domain.ErrInvalidField, key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s has type %T", domain.ErrInvalidField, key, v)
	}
}

func flexibleString(m map[string]any, key string) (string, error) {
	switch v := m[key].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %s has type %T", domain.ErrInvalidField, key, v)
	}
}
