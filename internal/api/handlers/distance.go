package handlers

import (
	"context"
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
)

type DistanceEstimator interface {
	EstimateDistance(ctx context.Context, start, end domain.GeoPoint) (domain.DistanceEstimate, string, error)
}

type DistanceHandler struct {
	Service DistanceEstimator
}

// Estimate returns the road distance estimate between two points.
// It always answers with a distance; upstream outages only change the strategy.
func (h *DistanceHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.DistanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	d, strategy, err := h.Service.EstimateDistance(r.Context(), req.Start.GeoPoint(), req.End.GeoPoint())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		DistanceKm: int(d),
		Strategy:   strategy,
	})
}
