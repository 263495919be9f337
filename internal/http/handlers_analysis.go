package http

import (
	"log/slog"
	"net/http"

	"github.com/David200308/expense-web/internal/core"
)

// handleAnalysisReport serves the full analysis report.
func (s *Server) handleAnalysisReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.generateReport(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleCategoryBreakdown serves the category projection of the report.
func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	report, ok := s.generateReport(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Categories []core.CategoryAnalysis `json:"categories"`
		Summary    core.Summary            `json:"summary"`
	}{
		Categories: report.CategoryBreakdown,
		Summary:    report.Summary,
	})
}

// handleTimeSeries serves the time-series projection of the report.
func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	report, ok := s.generateReport(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, struct {
		TimeSeries []core.TimeSeriesPoint `json:"timeSeries"`
		Summary    core.Summary           `json:"summary"`
	}{
		TimeSeries: report.TimeSeries,
		Summary:    report.Summary,
	})
}

// generateReport validates the request and runs the analysis engine once.
// The three analysis endpoints are projections of the same report.
func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) (core.AnalysisReport, bool) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return core.AnalysisReport{}, false
	}

	filters, err := parseAnalysisFilters(r.URL.Query(), owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return core.AnalysisReport{}, false
	}

	report, err := s.reports.GenerateReport(r.Context(), filters)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation failed",
			"error", err, "owner_id", owner)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return core.AnalysisReport{}, false
	}

	return report, true
}
