package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

type LocationHandler struct {
	Geocoder ports.Geocoder
}

// Search forwards a free-text address query to the geocoder.
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	locs, err := h.Geocoder.Search(r.Context(), q, limit)
	if err != nil {
		obs.WithContext(r.Context()).Warn("location search failed", zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "location search unavailable")
		return
	}

	res := dto.SearchLocationsResponse{
		Locations: make([]dto.LocationResponse, 0, len(locs)),
	}
	for _, l := range locs {
		res.Locations = append(res.Locations, dto.NewLocationResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}
