package maintenance

import (
	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// partSeverity orders part statuses for the system-level fold: a system takes
// the status of its worst part.
var partSeverity = map[models.PartStatus]int{
	models.PartOK:      0,
	models.PartDueSoon: 1,
	models.PartOverdue: 2,
}

// systemSeverity orders the full five-value set for the vessel-level fold.
// The calculator itself only ever emits operational/due_soon/overdue, but
// sensor-driven rules will be able to mark a system critical or offline
// without marking any individual part, so the vessel fold ranks all five.
var systemSeverity = map[models.SystemStatus]int{
	models.SystemOperational: 0,
	models.SystemOffline:     1,
	models.SystemCritical:    2,
	models.SystemDueSoon:     3,
	models.SystemOverdue:     4,
}

// systemStatusFor maps a worst-part status onto the system status set. The
// part fold can never produce critical or offline.
func systemStatusFor(worst models.PartStatus) models.SystemStatus {
	switch worst {
	case models.PartOverdue:
		return models.SystemOverdue
	case models.PartDueSoon:
		return models.SystemDueSoon
	default:
		return models.SystemOperational
	}
}

// overallStatus folds system statuses into a vessel status by taking the
// maximum severity. An empty slice yields operational.
func overallStatus(systems []models.SystemMaintenanceStatus) models.SystemStatus {
	overall := models.SystemOperational
	for _, s := range systems {
		if systemSeverity[s.Status] > systemSeverity[overall] {
			overall = s.Status
		}
	}
	return overall
}
