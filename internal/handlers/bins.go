package handlers

import (
	"encoding/json"
	"html"
	"net/http"
	"strings"

	"dumptrac/internal/models"
	"dumptrac/pkg/utils"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

var locationPolicy = bluemonday.StrictPolicy()

// sanitizeLocation strips any markup from a user supplied description.
func sanitizeLocation(raw string) string {
	return strings.TrimSpace(html.UnescapeString(locationPolicy.Sanitize(raw)))
}

// CreateBin ensures a bin exists for the location, creating it when missing.
// POST /api/bins
func CreateBin(store Store, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Latitude == nil || req.Longitude == nil {
			utils.Error(w, http.StatusBadRequest, "Latitude and longitude are required")
			return
		}

		location := sanitizeLocation(req.Location)
		if location == "" {
			utils.Error(w, http.StatusBadRequest, "Location is required")
			return
		}

		bin, err := store.EnsureBin(r.Context(), location, *req.Latitude, *req.Longitude)
		if err != nil {
			log.Error().Err(err).Str("location", location).Msg("❌ [CREATE-BIN] ensure failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to save bin")
			return
		}

		utils.Success(w, bin)
	}
}

// GetBins lists all bins, newest first.
// GET /api/bins
func GetBins(store Store, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bins, err := store.ListBins(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("❌ [GET-BINS] query failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bins")
			return
		}

		utils.Success(w, bins)
	}
}
