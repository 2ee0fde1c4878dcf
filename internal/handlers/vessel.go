package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Thenushan05/FishSpot-Backend/internal/db"
	"github.com/Thenushan05/FishSpot-Backend/internal/middleware"
	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// VesselHandler serves vessel CRUD, scoped to the owning account.
type VesselHandler struct {
	vessels db.VesselCollection
}

// NewVesselHandler creates a new vessel handler
func NewVesselHandler(vessels db.VesselCollection) *VesselHandler {
	return &VesselHandler{vessels: vessels}
}

// GetVessels returns all vessels owned by the caller.
func (h *VesselHandler) GetVessels(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	vessels, err := h.vessels.FindVessels(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch vessels", http.StatusInternalServerError)
		return
	}
	if vessels == nil {
		vessels = []models.Vessel{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"vessels": vessels})
}

// GetVessel returns one vessel by id.
func (h *VesselHandler) GetVessel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	vessel, err := h.vessels.FindVesselByID(r.Context(), mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, vessel)
}

// CreateVessel creates a vessel.
func (h *VesselHandler) CreateVessel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var vessel models.Vessel
	if err := json.NewDecoder(r.Body).Decode(&vessel); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if vessel.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	vessel.UserID = claims.UserID

	id, err := h.vessels.InsertVessel(r.Context(), vessel)
	if err != nil {
		http.Error(w, "Failed to create vessel", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      id.Hex(),
		"message": "Vessel created successfully",
	})
}

// UpdateVessel updates a vessel.
func (h *VesselHandler) UpdateVessel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var vessel models.Vessel
	if err := json.NewDecoder(r.Body).Decode(&vessel); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.vessels.UpdateVessel(r.Context(), mux.Vars(r)["id"], claims.UserID, vessel); err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Vessel updated successfully"})
}

// DeleteVessel deletes a vessel.
func (h *VesselHandler) DeleteVessel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	if err := h.vessels.DeleteVessel(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Vessel deleted successfully"})
}
