package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"truckbook/internal/auth"
	"truckbook/internal/db"
	"truckbook/internal/entities"
	apperrors "truckbook/internal/errors"
	"truckbook/internal/metrics"
	"truckbook/internal/service"
)

type AdminHandler struct {
	Service *service.ReservationService
}

func NewAdminHandler(svc *service.ReservationService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) GetFleet(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.Service.Roster(r.Context())
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fleetResponse(fleet))
}

// ResetFleet frees every vehicle without a public announcement.
func (h *AdminHandler) ResetFleet(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.Service.Reset(r.Context())
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}
	metrics.FleetResets.WithLabelValues("admin_api").Inc()
	email, _ := auth.AdminEmail(r.Context())
	log.WithField("admin", email).Info("Fleet reset through admin API")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fleetResponse(fleet))
}

func fleetResponse(fleet db.Fleet) entities.FleetResponse {
	resp := entities.FleetResponse{Total: len(fleet), Vehicles: make([]entities.VehicleStatus, 0, len(fleet))}
	for _, v := range fleet {
		if v.Free {
			resp.Free++
		}
		resp.Vehicles = append(resp.Vehicles, entities.VehicleStatus{
			ID:       v.ID,
			Name:     v.Name,
			Free:     v.Free,
			Occupant: v.Occupant,
		})
	}
	return resp
}
