package web

import (
	"net/http"
	"time"

	"github.com/reclaimhq/dormant/internal/account"
)

// handleExportReport streams a filtered CSV export. Filters combine with
// AND; omitted filters are no-ops. The filename carries a timestamp so
// repeated exports never collide in a download folder.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := account.Filters{
		SearchTerm: q.Get("search"),
		BankName:   q.Get("bankName"),
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := account.ParseReclaimStatus(raw)
		if !ok {
			s.respondBadRequest(w, r, "unknown reclaim status")
			return
		}
		filters.Status = &status
	}

	accounts, err := s.service.ApplyFilters(r.Context(), filters)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	csv := account.GenerateCSV(accounts)
	filename := "dormant_accounts_" + time.Now().Format("20060102_150405") + ".csv"

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}
