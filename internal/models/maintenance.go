package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TriggerType is the unit of measurement that drives a maintenance rule.
type TriggerType string

const (
	TriggerHours  TriggerType = "hours"
	TriggerDays   TriggerType = "days"
	TriggerTrips  TriggerType = "trips"
	TriggerSensor TriggerType = "sensor"
)

// IsValidTriggerType checks if a trigger type is one of the supported units.
func IsValidTriggerType(t TriggerType) bool {
	switch t {
	case TriggerHours, TriggerDays, TriggerTrips, TriggerSensor:
		return true
	default:
		return false
	}
}

// MaintenanceRule defines when maintenance is due for one part of a vessel
// system, e.g. "engine oil every 100 engine-hours, warn 20 hours before".
type MaintenanceRule struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"-" bson:"user_id"`
	SystemID      string             `json:"system_id" bson:"system_id"`
	PartName      string             `json:"part_name" bson:"part_name"`
	TriggerType   TriggerType        `json:"trigger_type" bson:"trigger_type"`
	IntervalValue int                `json:"interval_value" bson:"interval_value"`
	WarningBefore int                `json:"warning_before" bson:"warning_before"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// VesselState holds the current operating counters for one vessel. It is
// advanced by trip completions and read by the maintenance calculator.
type VesselState struct {
	VesselID     string    `json:"vessel_id" bson:"vessel_id"`
	UserID       string    `json:"-" bson:"user_id"`
	EngineHours  int       `json:"engine_hours" bson:"engine_hours"`
	TotalTrips   int       `json:"total_trips" bson:"total_trips"`
	LastTripDate string    `json:"last_trip_date,omitempty" bson:"last_trip_date,omitempty"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// MaintenanceLog is an append-only record of a completed service event. The
// counters-at-service anchor the next due calculation for hours/trips rules.
// CreatedAt is a pointer because hand-entered logs may lack it.
type MaintenanceLog struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID               string             `json:"-" bson:"user_id"`
	VesselID             string             `json:"vessel_id" bson:"vessel_id"`
	SystemID             string             `json:"system_id" bson:"system_id"`
	PartName             string             `json:"part_name" bson:"part_name"`
	DoneAt               string             `json:"done_at" bson:"done_at"` // ISO date string
	Technician           string             `json:"technician" bson:"technician"`
	Notes                string             `json:"notes" bson:"notes"`
	Cost                 string             `json:"cost,omitempty" bson:"cost,omitempty"`
	EngineHoursAtService *int               `json:"engine_hours_at_service,omitempty" bson:"engine_hours_at_service,omitempty"`
	TripsAtService       *int               `json:"trips_at_service,omitempty" bson:"trips_at_service,omitempty"`
	CreatedAt            *time.Time         `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// PartStatus is the computed state of a single tracked part.
type PartStatus string

const (
	PartOK      PartStatus = "ok"
	PartDueSoon PartStatus = "due_soon"
	PartOverdue PartStatus = "overdue"
)

// SystemStatus is the computed state of a vessel system or of the vessel as a
// whole. The calculator only produces the first three; critical and offline
// are reserved for sensor-driven rules.
type SystemStatus string

const (
	SystemOperational SystemStatus = "operational"
	SystemDueSoon     SystemStatus = "due_soon"
	SystemOverdue     SystemStatus = "overdue"
	SystemCritical    SystemStatus = "critical"
	SystemOffline     SystemStatus = "offline"
)

// PartMaintenanceStatus is the derived status of one part. It is built fresh
// on every summary request and never persisted.
type PartMaintenanceStatus struct {
	Name         string          `json:"name"`
	Status       PartStatus      `json:"status"`
	TriggerType  TriggerType     `json:"trigger_type"`
	CurrentValue *int            `json:"current_value,omitempty"`
	DueAtValue   *int            `json:"due_at_value,omitempty"`
	Remaining    *int            `json:"remaining,omitempty"`
	Message      string          `json:"message,omitempty"`
	LastService  *MaintenanceLog `json:"last_service,omitempty"`
}

// SystemMaintenanceStatus is the derived status of a whole vessel system.
type SystemMaintenanceStatus struct {
	SystemID       string                  `json:"system_id"`
	SystemName     string                  `json:"system_name"`
	Status         SystemStatus            `json:"status"`
	Parts          []PartMaintenanceStatus `json:"parts"`
	SummaryMessage string                  `json:"summary_message,omitempty"`
}

// VesselMaintenanceSummary is the complete derived maintenance picture for a
// vessel, serialized as-is by the HTTP layer.
type VesselMaintenanceSummary struct {
	VesselID      string                    `json:"vessel_id"`
	VesselName    string                    `json:"vessel_name"`
	State         VesselState               `json:"state"`
	Systems       []SystemMaintenanceStatus `json:"systems"`
	OverallStatus SystemStatus              `json:"overall_status"`
	GeneratedAt   time.Time                 `json:"generated_at"`
}

// CreateMaintenanceRuleRequest is the payload for creating a rule.
type CreateMaintenanceRuleRequest struct {
	SystemID      string      `json:"system_id"`
	PartName      string      `json:"part_name"`
	TriggerType   TriggerType `json:"trigger_type"`
	IntervalValue int         `json:"interval_value"`
	WarningBefore int         `json:"warning_before"`
	Description   string      `json:"description,omitempty"`
}

// UpdateMaintenanceRuleRequest carries the mutable rule fields; nil means
// "leave unchanged".
type UpdateMaintenanceRuleRequest struct {
	IntervalValue *int    `json:"interval_value,omitempty"`
	WarningBefore *int    `json:"warning_before,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// UpdateVesselStateRequest carries manual counter adjustments.
type UpdateVesselStateRequest struct {
	EngineHours  *int    `json:"engine_hours,omitempty"`
	TotalTrips   *int    `json:"total_trips,omitempty"`
	LastTripDate *string `json:"last_trip_date,omitempty"`
}

// CompleteTripRequest reports a finished fishing trip.
type CompleteTripRequest struct {
	DurationHours float64 `json:"trip_duration_hours"`
	TripDate      string  `json:"trip_date"`
}

// LogMaintenanceRequest records that maintenance was performed on a part.
// Counters-at-service are auto-filled from the current vessel state when
// omitted.
type LogMaintenanceRequest struct {
	SystemID             string `json:"system_id"`
	PartName             string `json:"part_name"`
	DoneAt               string `json:"done_at"`
	Technician           string `json:"technician"`
	Notes                string `json:"notes"`
	Cost                 string `json:"cost,omitempty"`
	EngineHoursAtService *int   `json:"engine_hours_at_service,omitempty"`
	TripsAtService       *int   `json:"trips_at_service,omitempty"`
}
