// internal/adapters/http_server/handlers.go
package httpserver

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"house_price/internal/app"
	"house_price/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Handlers struct{ P *app.PredictionService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)
	s.mux.Post("/", h.index)
	s.mux.Post("/api/predict", h.apiPredict)
	s.mux.Get("/api/options", h.options)
	s.mux.Get("/api/predictions", h.listPredictions)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response body")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

// ---- HTML form ----

var fieldLabels = map[string]string{
	"area_type":    "Area Type",
	"availability": "Availability",
	"location":     "Location",
	"size":         "Size",
	"society":      "Society",
	"total_sqft":   "Total Sqft",
	"bath":         "Bathrooms",
	"balcony":      "Balconies",
}

type selectField struct {
	Name, Label, Selected string
	Values                []string
}

type inputField struct {
	Name, Label, Value string
}

type indexPage struct {
	Selects       []selectField
	Inputs        []inputField
	Degraded      bool
	Error         string
	HasPrediction bool
	Prediction    float64
}

func (h *Handlers) page(r *http.Request) indexPage {
	opts := h.P.Options()
	pg := indexPage{Degraded: opts.Degraded()}
	for i, name := range domain.Schema.Categorical {
		var values []string
		if i < len(opts.Lists) {
			values = opts.Lists[i]
		}
		pg.Selects = append(pg.Selects, selectField{
			Name: name, Label: fieldLabels[name], Values: values, Selected: r.PostFormValue(name),
		})
	}
	for _, name := range domain.Schema.Numeric {
		pg.Inputs = append(pg.Inputs, inputField{Name: name, Label: fieldLabels[name], Value: r.PostFormValue(name)})
	}
	return pg
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, h.page(r))
		return
	}

	formErr := r.ParseForm()
	pg := h.page(r)
	if formErr != nil {
		pg.Error = "could not read the form"
		h.render(w, http.StatusBadRequest, pg)
		return
	}
	rec, err := app.RecordFromForm(r.PostForm)
	if err != nil {
		pg.Error = err.Error()
		h.render(w, http.StatusBadRequest, pg)
		return
	}
	p, err := h.P.Predict(r.Context(), app.EndpointForm, rec)
	if errors.Is(err, domain.ErrInvalidField) {
		pg.Error = err.Error()
		h.render(w, http.StatusBadRequest, pg)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("form prediction failed")
		pg.Error = "prediction failed"
		h.render(w, http.StatusInternalServerError, pg)
		return
	}
	pg.HasPrediction = true
	pg.Prediction = app.RoundPrediction(p)
	h.render(w, http.StatusOK, pg)
}

func (h *Handlers) render(w http.ResponseWriter, status int, pg indexPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, pg); err != nil {
		log.Error().Err(err).Msg("failed to render index page")
	}
}

// ---- JSON API ----

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidField):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) apiPredict(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", "request body must be a JSON object")
		return
	}

	rec, err := app.RecordFromJSON(body)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Record", err.Error())
		return
	}
	p, err := h.P.Predict(r.Context(), app.EndpointAPI, rec)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("api prediction failed")
			writeProblem(w, status, "Prediction Failed", "")
			return
		}
		writeProblem(w, status, "Invalid Record", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"prediction": p})
}

func (h *Handlers) options(w http.ResponseWriter, r *http.Request) {
	opts := h.P.Options()
	fields := make(map[string][]string, len(opts.Lists))
	for i, name := range domain.Schema.Categorical {
		if i < len(opts.Lists) {
			fields[name] = opts.Lists[i]
		}
	}
	writeJSON(w, http.StatusOK, struct {
		Source domain.OptionsSource `json:"source"`
		Reason string               `json:"reason,omitempty"`
		Fields map[string][]string  `json:"fields"`
	}{opts.Source, opts.Reason, fields})
}

func (h *Handlers) listPredictions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.P.RecentPredictions(r.Context(), limit)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "prediction log is disabled")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("list predictions failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if out == nil {
		out = []domain.PredictionLog{}
	}
	writeJSON(w, http.StatusOK, out)
}
