// Package maintenance contains the rule calculation engine: given a set of
// maintenance rules, a vessel's current counters, and its service log
// history, it computes the due/overdue status of every tracked part and rolls
// that up into per-system and whole-vessel statuses.
//
// The engine is a pure, synchronous transformation. It performs no I/O, never
// returns an error, and substitutes safe defaults for malformed or missing
// optional data; loading the inputs is the caller's job.
package maintenance

import (
	"fmt"
	"time"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// Calculator computes maintenance statuses. SystemNames maps system ids to
// display names and may be extended by the caller; Now supplies the clock for
// day-based rules and summary timestamps.
type Calculator struct {
	SystemNames map[string]string
	Now         func() time.Time
}

// NewCalculator returns a Calculator with the default system-name table and
// the wall clock.
func NewCalculator() *Calculator {
	return &Calculator{
		SystemNames: defaultSystemNames(),
		Now:         time.Now,
	}
}

// PartStatus calculates the maintenance status of a single part from its
// rule, the vessel's current counters, and the most recent service log for
// the part (nil if it has never been serviced).
func (c *Calculator) PartStatus(rule models.MaintenanceRule, state models.VesselState, lastLog *models.MaintenanceLog) models.PartMaintenanceStatus {
	var current, last int
	var unit string

	switch rule.TriggerType {
	case models.TriggerHours:
		current = state.EngineHours
		if lastLog != nil {
			last = intValue(lastLog.EngineHoursAtService)
		}
		unit = "hours"

	case models.TriggerTrips:
		current = state.TotalTrips
		if lastLog != nil {
			last = intValue(lastLog.TripsAtService)
		}
		unit = "trips"

	case models.TriggerDays:
		// Measured from the last service date, so the anchor is always zero.
		// No usable service date means it has been a long time: force overdue.
		current = rule.IntervalValue + 1
		if lastLog != nil {
			if done, ok := parseTimestamp(lastLog.DoneAt); ok {
				current = int(c.Now().Sub(done).Hours() / 24)
			}
		}
		unit = "days"

	case models.TriggerSensor:
		// Reserved for IoT sensor integration.
		return models.PartMaintenanceStatus{
			Name:        rule.PartName,
			Status:      models.PartOK,
			TriggerType: rule.TriggerType,
			Message:     "Sensor monitoring active",
			LastService: lastLog,
		}

	default:
		return models.PartMaintenanceStatus{
			Name:        rule.PartName,
			Status:      models.PartOK,
			TriggerType: rule.TriggerType,
			Message:     "Unknown trigger type",
			LastService: lastLog,
		}
	}

	dueAt := last + rule.IntervalValue
	remaining := dueAt - current

	var status models.PartStatus
	var message string
	switch {
	case remaining < 0:
		status = models.PartOverdue
		message = fmt.Sprintf("%s is overdue by %d %s", rule.PartName, -remaining, unit)
	case remaining == 0:
		// The boundary is inclusive of due_soon, not overdue.
		status = models.PartDueSoon
		message = fmt.Sprintf("%s is due now", rule.PartName)
	case remaining <= rule.WarningBefore:
		status = models.PartDueSoon
		message = fmt.Sprintf("%s due in %d %s", rule.PartName, remaining, unit)
	default:
		status = models.PartOK
		message = fmt.Sprintf("%s due in %d %s", rule.PartName, remaining, unit)
	}

	return models.PartMaintenanceStatus{
		Name:         rule.PartName,
		Status:       status,
		TriggerType:  rule.TriggerType,
		CurrentValue: intPtr(current),
		DueAtValue:   intPtr(dueAt),
		Remaining:    intPtr(remaining),
		Message:      message,
		LastService:  lastLog,
	}
}
