package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Thenushan05/FishSpot-Backend/internal/db"
	"github.com/Thenushan05/FishSpot-Backend/internal/maintenance"
	"github.com/Thenushan05/FishSpot-Backend/internal/middleware"
	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// MaintenanceHandler serves the rules-based maintenance API: rule CRUD,
// vessel state tracking, service logs, and the calculated summary.
type MaintenanceHandler struct {
	rules      db.RuleCollection
	states     db.StateCollection
	logs       db.LogCollection
	vessels    db.VesselCollection
	calculator *maintenance.Calculator
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(rules db.RuleCollection, states db.StateCollection, logs db.LogCollection, vessels db.VesselCollection, calculator *maintenance.Calculator) *MaintenanceHandler {
	return &MaintenanceHandler{
		rules:      rules,
		states:     states,
		logs:       logs,
		vessels:    vessels,
		calculator: calculator,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireOwner resolves the authenticated user and verifies vessel ownership.
func (h *MaintenanceHandler) requireOwner(w http.ResponseWriter, r *http.Request) (*models.Claims, *models.Vessel, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, nil, false
	}

	vesselID := mux.Vars(r)["id"]
	vessel, err := h.vessels.FindVesselByID(r.Context(), vesselID, claims.UserID)
	if err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return nil, nil, false
	}
	return claims, vessel, true
}

// GetRules returns the caller's maintenance rules, optionally filtered by
// system id.
func (h *MaintenanceHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	rules, err := h.rules.FindRules(r.Context(), claims.UserID, r.URL.Query().Get("system_id"))
	if err != nil {
		http.Error(w, "Failed to fetch rules", http.StatusInternalServerError)
		return
	}
	if rules == nil {
		rules = []models.MaintenanceRule{}
	}

	writeJSON(w, http.StatusOK, rules)
}

// CreateRule creates a maintenance rule.
func (h *MaintenanceHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var req models.CreateMaintenanceRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Rules are validated once here; the calculator trusts its inputs.
	if req.SystemID == "" || req.PartName == "" {
		http.Error(w, "system_id and part_name are required", http.StatusBadRequest)
		return
	}
	if !models.IsValidTriggerType(req.TriggerType) {
		http.Error(w, "Invalid trigger type", http.StatusBadRequest)
		return
	}
	if req.IntervalValue <= 0 {
		http.Error(w, "interval_value must be positive", http.StatusBadRequest)
		return
	}
	if req.WarningBefore < 0 {
		http.Error(w, "warning_before must not be negative", http.StatusBadRequest)
		return
	}

	rule := models.MaintenanceRule{
		UserID:        claims.UserID,
		SystemID:      req.SystemID,
		PartName:      req.PartName,
		TriggerType:   req.TriggerType,
		IntervalValue: req.IntervalValue,
		WarningBefore: req.WarningBefore,
		Description:   req.Description,
	}

	id, err := h.rules.InsertRule(r.Context(), rule)
	if err != nil {
		http.Error(w, "Failed to create rule", http.StatusInternalServerError)
		return
	}
	rule.ID = id
	rule.CreatedAt = time.Now()

	writeJSON(w, http.StatusCreated, rule)
}

// UpdateRule updates the mutable fields of a rule.
func (h *MaintenanceHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var req models.UpdateMaintenanceRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.IntervalValue != nil && *req.IntervalValue <= 0 {
		http.Error(w, "interval_value must be positive", http.StatusBadRequest)
		return
	}
	if req.WarningBefore != nil && *req.WarningBefore < 0 {
		http.Error(w, "warning_before must not be negative", http.StatusBadRequest)
		return
	}

	ruleID := mux.Vars(r)["id"]
	if err := h.rules.UpdateRule(r.Context(), ruleID, claims.UserID, req); err != nil {
		http.Error(w, "Maintenance rule not found", http.StatusNotFound)
		return
	}

	rule, err := h.rules.FindRuleByID(r.Context(), ruleID, claims.UserID)
	if err != nil {
		http.Error(w, "Maintenance rule not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// DeleteRule deletes a rule.
func (h *MaintenanceHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	if err := h.rules.DeleteRule(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		http.Error(w, "Maintenance rule not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Rule deleted successfully"})
}

// defaultState returns the zero-valued state for a vessel that has none yet.
func defaultState(vesselID, userID string) models.VesselState {
	return models.VesselState{
		VesselID:  vesselID,
		UserID:    userID,
		UpdatedAt: time.Now(),
	}
}

// GetVesselState returns the current counters for a vessel, creating a
// default state on first access.
func (h *MaintenanceHandler) GetVesselState(w http.ResponseWriter, r *http.Request) {
	claims, vessel, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	state, err := h.states.FindState(r.Context(), vessel.ID.Hex(), claims.UserID)
	if err != nil {
		created := defaultState(vessel.ID.Hex(), claims.UserID)
		if err := h.states.UpsertState(r.Context(), created); err != nil {
			http.Error(w, "Failed to create vessel state", http.StatusInternalServerError)
			return
		}
		state = &created
	}

	writeJSON(w, http.StatusOK, state)
}

// UpdateVesselState applies manual counter adjustments.
func (h *MaintenanceHandler) UpdateVesselState(w http.ResponseWriter, r *http.Request) {
	claims, vessel, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var req models.UpdateVesselStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	state, err := h.states.FindState(r.Context(), vessel.ID.Hex(), claims.UserID)
	if err != nil {
		created := defaultState(vessel.ID.Hex(), claims.UserID)
		state = &created
	}

	if req.EngineHours != nil {
		state.EngineHours = *req.EngineHours
	}
	if req.TotalTrips != nil {
		state.TotalTrips = *req.TotalTrips
	}
	if req.LastTripDate != nil {
		state.LastTripDate = *req.LastTripDate
	}
	state.UpdatedAt = time.Now()

	if err := h.states.UpsertState(r.Context(), *state); err != nil {
		http.Error(w, "Failed to update vessel state", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// CompleteTrip increments the vessel's counters after a finished trip.
func (h *MaintenanceHandler) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	claims, vessel, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var req models.CompleteTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.DurationHours < 0 {
		http.Error(w, "trip_duration_hours must not be negative", http.StatusBadRequest)
		return
	}

	state, err := h.states.FindState(r.Context(), vessel.ID.Hex(), claims.UserID)
	if err != nil {
		created := defaultState(vessel.ID.Hex(), claims.UserID)
		state = &created
	}

	updated := maintenance.ApplyTrip(*state, req.DurationHours, req.TripDate, time.Now())
	if err := h.states.UpsertState(r.Context(), updated); err != nil {
		http.Error(w, "Failed to update vessel state", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Trip completed successfully",
		"state":   updated,
	})
}

// GetLogs returns maintenance logs for a vessel, most recent first.
func (h *MaintenanceHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	claims, vessel, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	limit := int64(100)
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := h.logs.FindLogs(r.Context(), vessel.ID.Hex(), claims.UserID,
		r.URL.Query().Get("system_id"), r.URL.Query().Get("part_name"), limit)
	if err != nil {
		http.Error(w, "Failed to fetch logs", http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []models.MaintenanceLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}

// CreateLog records that maintenance was performed on a part. Counters at
// service time are auto-filled from the current vessel state when omitted,
// and the stored state is caught up to higher logged counters so a
// just-logged service is not still reported overdue.
func (h *MaintenanceHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	claims, vessel, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var req models.LogMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.SystemID == "" || req.PartName == "" {
		http.Error(w, "system_id and part_name are required", http.StatusBadRequest)
		return
	}

	state, stateErr := h.states.FindState(r.Context(), vessel.ID.Hex(), claims.UserID)

	now := time.Now()
	entry := models.MaintenanceLog{
		UserID:               claims.UserID,
		VesselID:             vessel.ID.Hex(),
		SystemID:             req.SystemID,
		PartName:             req.PartName,
		DoneAt:               req.DoneAt,
		Technician:           req.Technician,
		Notes:                req.Notes,
		Cost:                 req.Cost,
		EngineHoursAtService: req.EngineHoursAtService,
		TripsAtService:       req.TripsAtService,
		CreatedAt:            &now,
	}

	if stateErr == nil {
		if entry.EngineHoursAtService == nil {
			hours := state.EngineHours
			entry.EngineHoursAtService = &hours
		}
		if entry.TripsAtService == nil {
			trips := state.TotalTrips
			entry.TripsAtService = &trips
		}
	}

	id, err := h.logs.InsertLog(r.Context(), entry)
	if err != nil {
		http.Error(w, "Failed to create log", http.StatusInternalServerError)
		return
	}
	entry.ID = id

	h.catchUpState(r, claims.UserID, vessel.ID.Hex(), entry)

	writeJSON(w, http.StatusCreated, entry)
}

// catchUpState raises the stored counters to the logged service point if the
// log reports higher values. Best effort: logging must succeed regardless.
func (h *MaintenanceHandler) catchUpState(r *http.Request, userID, vesselID string, entry models.MaintenanceLog) {
	state, err := h.states.FindState(r.Context(), vesselID, userID)
	if err != nil {
		created := defaultState(vesselID, userID)
		state = &created
	}

	updated := false
	if entry.EngineHoursAtService != nil && *entry.EngineHoursAtService > state.EngineHours {
		state.EngineHours = *entry.EngineHoursAtService
		updated = true
	}
	if entry.TripsAtService != nil && *entry.TripsAtService > state.TotalTrips {
		state.TotalTrips = *entry.TripsAtService
		updated = true
	}

	if updated {
		state.UpdatedAt = time.Now()
		if err := h.states.UpsertState(r.Context(), *state); err != nil {
			log.WithError(err).WithField("vessel_id", vesselID).Warn("failed to catch vessel state up to logged counters")
		}
	}
}

// GetSummary calculates the complete maintenance summary for a vessel from
// its rules, current state, and log history.
func (h *MaintenanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	claims, vessel, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	state, err := h.states.FindState(r.Context(), vessel.ID.Hex(), claims.UserID)
	if err != nil {
		created := defaultState(vessel.ID.Hex(), claims.UserID)
		state = &created
	}

	rules, err := h.rules.FindRules(r.Context(), claims.UserID, "")
	if err != nil {
		http.Error(w, "Failed to fetch rules", http.StatusInternalServerError)
		return
	}

	logs, err := h.logs.FindLogs(r.Context(), vessel.ID.Hex(), claims.UserID, "", "", 0)
	if err != nil {
		http.Error(w, "Failed to fetch logs", http.StatusInternalServerError)
		return
	}

	summary := h.calculator.VesselSummary(vessel.ID.Hex(), vessel.Name, *state, rules, logs)

	writeJSON(w, http.StatusOK, summary)
}
