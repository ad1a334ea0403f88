package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dumptrac/internal/database"
	"dumptrac/internal/models"
	"dumptrac/internal/services"
	"dumptrac/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// GetReports lists all reports, newest first.
// GET /api/reports
func GetReports(store Store, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := store.ListReports(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("❌ [GET-REPORTS] query failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch reports")
			return
		}

		utils.Success(w, reports)
	}
}

// CreateReport files a report against an existing bin.
// POST /api/reports
func CreateReport(store Store, notifier services.Notifier, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		status := strings.TrimSpace(req.Status)
		if status == "" {
			utils.Error(w, http.StatusBadRequest, "Status is required")
			return
		}

		bin, err := store.GetBin(r.Context(), req.BinID)
		if errors.Is(err, database.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Bin not found")
			return
		}
		if err != nil {
			log.Error().Err(err).Int64("bin_id", req.BinID).Msg("❌ [CREATE-REPORT] bin lookup failed")
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		report, err := store.CreateReport(r.Context(), bin.ID, status)
		if err != nil {
			log.Error().Err(err).Int64("bin_id", bin.ID).Msg("❌ [CREATE-REPORT] insert failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to create report")
			return
		}

		log.Info().
			Int64("report_id", report.ID).
			Int64("bin_id", bin.ID).
			Str("location", bin.Location).
			Str("status", report.Status).
			Str("lat", bin.Latitude.String()).
			Str("lng", bin.Longitude.String()).
			Msg("📣 NOTIFY: bin reported")

		if notifier != nil {
			if err := notifier.NotifyBinFull(r.Context(), bin, report); err != nil {
				log.Warn().Err(err).Int64("report_id", report.ID).Msg("⚠️  [CREATE-REPORT] notification failed")
			}
		}

		utils.Success(w, report)
	}
}

// ClearReport marks a report done and stamps cleared_at.
// PUT /api/reports/{id}/clear
func ClearReport(store Store, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid report id")
			return
		}

		report, err := store.ClearReport(r.Context(), id, time.Now().UTC())
		if errors.Is(err, database.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Report not found")
			return
		}
		if err != nil {
			log.Error().Err(err).Int64("report_id", id).Msg("❌ [CLEAR-REPORT] update failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to clear report")
			return
		}

		log.Info().Int64("report_id", id).Msg("✅ [CLEAR-REPORT] report cleared")
		utils.Success(w, report)
	}
}
