package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/report"
)

// Report window bounds in months.
const (
	defaultReportMonths = 6
	maxReportMonths     = 24
)

// ReportsHandler serves the dashboard and the derived reports.
type ReportsHandler struct {
	Guard *Guard
	Now   func() time.Time
}

func (h *ReportsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// parseMonths reads the months query parameter.
func parseMonths(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return defaultReportMonths, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxReportMonths {
		return 0, false
	}
	return n, true
}

// Dashboard handles GET /api/dashboard.
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := Cached(r.Context(), h.Guard, report.KeyDashboard, func(s *inventory.Session) report.Dashboard {
		return report.BuildDashboard(s.Items(), s.Metadata())
	})
	jsonResponse(w, http.StatusOK, d)
}

// Categories handles GET /api/reports/categories.
func (h *ReportsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	rows := Cached(r.Context(), h.Guard, report.KeyCategories, func(s *inventory.Session) []report.CategoryStock {
		return report.Categories(s.Items(), s.Metadata())
	})
	if rows == nil {
		rows = []report.CategoryStock{}
	}
	jsonResponse(w, http.StatusOK, rows)
}

// Monthly handles GET /api/reports/monthly.
func (h *ReportsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	n, ok := parseMonths(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "months must be between 1 and 24")
		return
	}

	now := h.now()
	rows := Cached(r.Context(), h.Guard, report.MonthlyKey(n), func(s *inventory.Session) []report.MonthlyMovement {
		return report.Monthly(s.Movements(""), now, n)
	})
	jsonResponse(w, http.StatusOK, rows)
}

// Turnover handles GET /api/reports/turnover.
func (h *ReportsHandler) Turnover(w http.ResponseWriter, r *http.Request) {
	n, ok := parseMonths(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "months must be between 1 and 24")
		return
	}

	now := h.now()
	rows := Cached(r.Context(), h.Guard, report.TurnoverKey(n), func(s *inventory.Session) []report.MonthlyTurnover {
		return report.Turnover(s.Items(), s.Movements(""), now, n)
	})
	jsonResponse(w, http.StatusOK, rows)
}
