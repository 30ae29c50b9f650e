package app_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"house_price/internal/app"
	"house_price/internal/domain"
)

func TestRecordFromForm_MissingNumericDefaultsToZero(t *testing.T) {
	form := url.Values{
		"area_type":    {"Built-up Area"},
		"availability": {"Ready To Move"},
		"location":     {"Whitefield"},
		"size":         {"2 BHK"},
		"society":      {"GreenVille"},
		"total_sqft":   {"1200"},
		"balcony":      {""},
	}
	rec, err := app.RecordFromForm(form)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := domain.Record{
		AreaType: "Built-up Area", Availability: "Ready To Move", Location: "Whitefield",
		Size: "2 BHK", Society: "GreenVille", TotalSqft: 1200, Bath: 0, Balcony: 0,
	}
	if rec != want {
		t.Fatalf("got %+v, want %+v", rec, want)
	}
}

func TestRecordFromForm_BadNumber(t *testing.T) {
	_, err := app.RecordFromForm(url.Values{"bath": {"two"}})
	if !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(body))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

func TestRecordFromJSON_CoercesTypes(t *testing.T) {
	m := decode(t, `{"area_type":"Built-up Area","availability":"Ready To Move","location":"Whitefield",
		"size":"2 BHK","society":"GreenVille","total_sqft":"1200","bath":2,"balcony":1.0}`)
	rec, err := app.RecordFromJSON(m)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rec.TotalSqft != 1200 || rec.Bath != 2 || rec.Balcony != 1 || rec.Location != "Whitefield" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// plain float64 values from a decoder without UseNumber
	rec, err = app.RecordFromJSON(map[string]any{"total_sqft": 900.0, "bath": 1.0, "balcony": 0.0, "size": 3.0})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rec.TotalSqft != 900 || rec.Size != "3" || rec.AreaType != "" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestRecordFromJSON_Errors(t *testing.T) {
	cases := map[string]struct {
		body string
		want error
	}{
		"missing bath":   {`{"total_sqft":1200,"balcony":1}`, domain.ErrMissingField},
		"null balcony":   {`{"total_sqft":1200,"bath":2,"balcony":null}`, domain.ErrMissingField},
		"word for bath":  {`{"total_sqft":1200,"bath":"two","balcony":1}`, domain.ErrInvalidField},
		"bool category":  {`{"location":true,"total_sqft":1,"bath":1,"balcony":1}`, domain.ErrInvalidField},
		"object numeric": {`{"total_sqft":{"v":1},"bath":1,"balcony":1}`, domain.ErrInvalidField},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := app.RecordFromJSON(decode(t, tc.body))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
