package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/fundquant/internal/plan"
	"github.com/wonny/fundquant/internal/runner"
	"github.com/wonny/fundquant/pkg/logger"
)

// BacktestHandler runs backtests on demand.
type BacktestHandler struct {
	runner *runner.Runner
	logger *logger.Logger
}

// NewBacktestHandler creates a backtest handler.
func NewBacktestHandler(r *runner.Runner, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{runner: r, logger: log}
}

// Run executes a backtest plan posted as JSON and returns the summary.
// POST /api/v1/backtests
func (h *BacktestHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p plan.Plan
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	// Report files are a CLI concern; the API never writes to disk.
	p.Output.Dir = ""

	result, err := h.runner.Run(ctx, &p)
	if err != nil {
		switch {
		case errors.Is(err, runner.ErrNoNavs):
			respondError(w, http.StatusNotFound, err.Error())
		case plan.IsValidationError(err):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.WithError(err).Error("backtest run failed")
			respondError(w, http.StatusInternalServerError, "backtest run failed")
		}
		return
	}

	record := result.Record
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fund":            p.Fund.Code,
		"days":            result.Days,
		"total_cost":      record.TotalCost().String(),
		"total_amount":    record.TotalAmount().String(),
		"total_profit":    record.TotalProfit().String(),
		"profit_rate":     record.TotalProfitRate().String(),
		"position_equity": record.PositionEquity().String(),
		"summary":         result.Summary,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
