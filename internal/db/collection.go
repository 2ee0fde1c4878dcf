package db

import (
	"context"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RuleCollection defines the interface for maintenance rule operations.
type RuleCollection interface {
	InsertRule(ctx context.Context, rule models.MaintenanceRule) (primitive.ObjectID, error)
	FindRules(ctx context.Context, userID, systemID string) ([]models.MaintenanceRule, error)
	FindRuleByID(ctx context.Context, id, userID string) (*models.MaintenanceRule, error)
	UpdateRule(ctx context.Context, id, userID string, update models.UpdateMaintenanceRuleRequest) error
	DeleteRule(ctx context.Context, id, userID string) error
}

// StateCollection defines the interface for vessel state operations.
type StateCollection interface {
	FindState(ctx context.Context, vesselID, userID string) (*models.VesselState, error)
	UpsertState(ctx context.Context, state models.VesselState) error
}

// LogCollection defines the interface for maintenance log operations. Logs
// are append-only; there is no update or delete.
type LogCollection interface {
	InsertLog(ctx context.Context, log models.MaintenanceLog) (primitive.ObjectID, error)
	FindLogs(ctx context.Context, vesselID, userID, systemID, partName string, limit int64) ([]models.MaintenanceLog, error)
}

// VesselCollection defines the interface for vessel operations.
type VesselCollection interface {
	InsertVessel(ctx context.Context, vessel models.Vessel) (primitive.ObjectID, error)
	FindVessels(ctx context.Context, userID string) ([]models.Vessel, error)
	FindVesselByID(ctx context.Context, id, userID string) (*models.Vessel, error)
	UpdateVessel(ctx context.Context, id, userID string, vessel models.Vessel) error
	DeleteVessel(ctx context.Context, id, userID string) error
}
