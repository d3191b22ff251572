// Package handlers holds the HTTP endpoint implementations.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/pkg/logger"
)

// NavHandler serves stored NAV series.
type NavHandler struct {
	repo   contracts.NavRepository
	logger *logger.Logger
}

// NewNavHandler creates a NAV handler.
func NewNavHandler(repo contracts.NavRepository, log *logger.Logger) *NavHandler {
	return &NavHandler{repo: repo, logger: log}
}

type navResponse struct {
	Code     string `json:"code"`
	Date     string `json:"date"`
	Value    string `json:"value"`
	Increase string `json:"increase"`
}

// ListNavs returns the stored series for a fund.
// GET /api/v1/funds/{code}/navs?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *NavHandler) ListNavs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := mux.Vars(r)["code"]
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	navs, err := h.repo.ListByCodeAndRange(ctx, code, from, to)
	if err != nil {
		h.logger.WithError(err).Error("failed to list navs")
		respondError(w, http.StatusInternalServerError, "failed to retrieve NAV series")
		return
	}
	if len(navs) == 0 {
		respondError(w, http.StatusNotFound, "no NAV records for fund "+code)
		return
	}

	out := make([]navResponse, 0, len(navs))
	for _, nav := range navs {
		out = append(out, navResponse{
			Code:     nav.Code,
			Date:     nav.Date,
			Value:    nav.Value.String(),
			Increase: nav.Increase.String(),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"code":  code,
		"count": len(out),
		"navs":  out,
	})
}

// GetStats returns aggregate statistics for a stored series.
// GET /api/v1/funds/{code}/stats
func (h *NavHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := mux.Vars(r)["code"]

	stats, err := h.repo.Stats(ctx, code)
	if err != nil {
		h.logger.WithError(err).Error("failed to get nav stats")
		respondError(w, http.StatusInternalServerError, "failed to retrieve NAV statistics")
		return
	}
	if stats.Count == 0 {
		respondError(w, http.StatusNotFound, "no NAV records for fund "+code)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"code":       stats.Code,
		"count":      stats.Count,
		"first_date": stats.FirstDate,
		"last_date":  stats.LastDate,
		"min_value":  stats.MinValue.String(),
		"max_value":  stats.MaxValue.String(),
		"avg_value":  stats.AvgValue.String(),
	})
}
