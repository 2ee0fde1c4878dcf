package maintenance

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// defaultSystemNames maps well-known system ids to display names. Unknown ids
// fall back to a title-cased version of the id.
func defaultSystemNames() map[string]string {
	return map[string]string{
		"engine":      "Main Engine",
		"nets":        "Nets & Gear",
		"safety":      "Safety Equipment",
		"electronics": "Electronics",
		"hydraulics":  "Hydraulic Systems",
		"cooling":     "Cooling System",
		"fuel":        "Fuel System",
	}
}

func (c *Calculator) systemName(systemID string) string {
	if name, ok := c.SystemNames[systemID]; ok {
		return name
	}
	return cases.Title(language.English).String(systemID)
}

// SystemStatus aggregates the part statuses of one system. The system takes
// the status of its worst part; the summary reports the overdue count, or the
// message of the most urgent due-soon part, or a fixed all-clear.
func (c *Calculator) SystemStatus(systemID, systemName string, rules []models.MaintenanceRule, state models.VesselState, latest map[string]*models.MaintenanceLog) models.SystemMaintenanceStatus {
	parts := make([]models.PartMaintenanceStatus, 0, len(rules))
	for _, rule := range rules {
		parts = append(parts, c.PartStatus(rule, state, latest[rule.PartName]))
	}

	worst := models.PartOK
	for _, p := range parts {
		if partSeverity[p.Status] > partSeverity[worst] {
			worst = p.Status
		}
	}
	status := systemStatusFor(worst)

	var summary string
	switch status {
	case models.SystemOverdue:
		overdue := 0
		for _, p := range parts {
			if p.Status == models.PartOverdue {
				overdue++
			}
		}
		summary = fmt.Sprintf("%d part(s) overdue", overdue)
	case models.SystemDueSoon:
		summary = mostUrgent(parts).Message
	default:
		summary = "All systems operational"
	}

	return models.SystemMaintenanceStatus{
		SystemID:       systemID,
		SystemName:     systemName,
		Status:         status,
		Parts:          parts,
		SummaryMessage: summary,
	}
}

// mostUrgent returns the due-soon part with the smallest remaining value.
// Parts without a remaining value sort last.
func mostUrgent(parts []models.PartMaintenanceStatus) models.PartMaintenanceStatus {
	var best models.PartMaintenanceStatus
	bestRemaining := int(^uint(0) >> 1)
	for _, p := range parts {
		if p.Status != models.PartDueSoon {
			continue
		}
		r := bestRemaining
		if p.Remaining != nil {
			r = *p.Remaining
		}
		if best.Name == "" || r < bestRemaining {
			best = p
			bestRemaining = r
		}
	}
	return best
}

// VesselSummary computes the complete maintenance summary for a vessel:
// rules grouped by system, the latest log selected per part, every part
// status calculated, and the results folded into system and vessel statuses.
// Systems appear in first-seen rule order so identical inputs yield identical
// output.
func (c *Calculator) VesselSummary(vesselID, vesselName string, state models.VesselState, rules []models.MaintenanceRule, logs []models.MaintenanceLog) models.VesselMaintenanceSummary {
	rulesBySystem := make(map[string][]models.MaintenanceRule)
	var systemOrder []string
	for _, rule := range rules {
		if _, ok := rulesBySystem[rule.SystemID]; !ok {
			systemOrder = append(systemOrder, rule.SystemID)
		}
		rulesBySystem[rule.SystemID] = append(rulesBySystem[rule.SystemID], rule)
	}

	latest := SelectLatest(logs)

	systems := make([]models.SystemMaintenanceStatus, 0, len(systemOrder))
	for _, systemID := range systemOrder {
		systems = append(systems, c.SystemStatus(
			systemID,
			c.systemName(systemID),
			rulesBySystem[systemID],
			state,
			latest[systemID],
		))
	}

	return models.VesselMaintenanceSummary{
		VesselID:      vesselID,
		VesselName:    vesselName,
		State:         state,
		Systems:       systems,
		OverallStatus: overallStatus(systems),
		GeneratedAt:   c.Now(),
	}
}

// ApplyTrip advances a vessel's counters after a completed trip.
func ApplyTrip(state models.VesselState, durationHours float64, tripDate string, at time.Time) models.VesselState {
	state.EngineHours += int(durationHours)
	state.TotalTrips++
	state.LastTripDate = tripDate
	state.UpdatedAt = at
	return state
}
