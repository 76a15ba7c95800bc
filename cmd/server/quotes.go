package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/worktop/internal/catalog"
	"github.com/Simplici0/worktop/internal/export"
	"github.com/Simplici0/worktop/internal/geometry"
	"github.com/Simplici0/worktop/internal/pricing"
	"github.com/Simplici0/worktop/internal/worktop"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type validateResponse struct {
	geometry.Result
	Complete bool `json:"complete"`
}

// configurationFailures lists the rule violations of one submitted
// configuration, by its position in the request.
type configurationFailures struct {
	Index    int                `json:"index"`
	Failures []geometry.Failure `json:"failures"`
}

type evaluation struct {
	Quote    pricing.Quote           `json:"quote"`
	Failures []configurationFailures `json:"failures,omitempty"`
}

func (s *server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.store.ListMaterials(r.Context())
	if err != nil {
		s.fail(w, r, "handleMaterials", err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (s *server) handleValidateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req configurationRequest
	if !s.decode(w, r, &req) {
		return
	}
	cfg, err := req.toDomain()
	if err != nil {
		s.fail(w, r, "handleValidateConfiguration", &requestError{Message: err.Error()})
		return
	}

	var m *worktop.Material
	if cfg.MaterialID != 0 {
		found, err := s.store.Material(r.Context(), cfg.MaterialID)
		switch {
		case err == nil:
			m = &found
		case !errors.Is(err, catalog.ErrNotFound):
			s.fail(w, r, "handleValidateConfiguration", err)
			return
		}
	}

	resp := validateResponse{Result: geometry.Validate(cfg, m), Complete: geometry.IsComplete(cfg, m)}
	status := http.StatusOK
	if !resp.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *server) handleQuoteCalc(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if !s.decode(w, r, &req) {
		return
	}

	ev, err := s.evaluate(r.Context(), req.Configurations)
	if err != nil {
		s.fail(w, r, "handleQuoteCalc", err)
		return
	}

	status := http.StatusOK
	if len(ev.Failures) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ev)
}

func (s *server) handleQuoteSave(w http.ResponseWriter, r *http.Request) {
	var req saveQuoteRequest
	if !s.decode(w, r, &req) {
		return
	}

	ev, err := s.evaluate(r.Context(), req.Configurations)
	if err != nil {
		s.fail(w, r, "handleQuoteSave", err)
		return
	}
	if len(ev.Failures) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ev)
		return
	}

	configurations, err := json.Marshal(req.Configurations)
	if err != nil {
		s.fail(w, r, "handleQuoteSave", fmt.Errorf("encode configurations: %w", err))
		return
	}

	saved, err := s.store.SaveQuote(r.Context(), catalog.NewQuote{
		Title:          req.Title,
		Notes:          req.Notes,
		Quote:          ev.Quote,
		Configurations: configurations,
	})
	if err != nil {
		s.fail(w, r, "handleQuoteSave", err)
		return
	}

	w.Header().Set("Location", "/quotes/"+saved.PublicID)
	writeJSON(w, http.StatusCreated, saved)
}

// evaluate validates every configuration and prices the ones that pass.
// Indexes in the returned quote refer to positions in reqs.
func (s *server) evaluate(ctx context.Context, reqs []configurationRequest) (evaluation, error) {
	cfgs, err := toConfigurations(reqs)
	if err != nil {
		return evaluation{}, &requestError{Message: err.Error()}
	}

	materials, err := s.store.Materials(ctx)
	if err != nil {
		return evaluation{}, err
	}
	fees, err := s.store.FeeSchedule(ctx)
	if err != nil {
		return evaluation{}, err
	}

	var (
		ev       evaluation
		accepted []worktop.Configuration
		origin   []int
	)
	for i, cfg := range cfgs {
		// Configurations without an assembly or a known material are left to
		// the calculator, which lists them as skipped.
		if m, ok := materials.Material(cfg.MaterialID); ok && cfg.Assembly != nil {
			if res := geometry.Validate(cfg, &m); !res.OK {
				ev.Failures = append(ev.Failures, configurationFailures{Index: i, Failures: res.Failures})
				continue
			}
		}
		accepted = append(accepted, cfg)
		origin = append(origin, i)
	}

	q, err := pricing.ComputeQuote(accepted, materials, fees)
	if err != nil {
		return evaluation{}, err
	}
	for i := range q.Items {
		q.Items[i].Index = origin[q.Items[i].Index]
	}
	for i := range q.Skipped {
		q.Skipped[i].Index = origin[q.Skipped[i].Index]
	}

	ev.Quote = q
	return ev, nil
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.store.ListQuotes(r.Context(), query)
	if err != nil {
		s.fail(w, r, "handleQuotesList", err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.QuoteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "handleQuoteDetail", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.QuoteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "handleQuoteText", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := export.WriteText(w, exportDocument(saved)); err != nil && s.log != nil {
		s.log.WithError(err).Warn("write quote text")
	}
}

func (s *server) handleQuoteXLSX(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.QuoteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "handleQuoteXLSX", err)
		return
	}

	body, err := export.WriteXLSX(exportDocument(saved))
	if err != nil {
		s.fail(w, r, "handleQuoteXLSX", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.xlsx"`, saved.PublicID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func exportDocument(saved catalog.SavedQuote) export.Document {
	return export.Document{
		ID:        saved.PublicID,
		Title:     saved.Title,
		Notes:     saved.Notes,
		CreatedAt: saved.CreatedAt,
		Quote:     saved.Quote,
	}
}
