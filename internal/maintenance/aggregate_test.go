package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

func TestSystemStatus_OverdueTakesPriority(t *testing.T) {
	c := testCalculator(time.Now())
	rules := []models.MaintenanceRule{
		{SystemID: "engine", PartName: "Engine oil", TriggerType: models.TriggerHours, IntervalValue: 100, WarningBefore: 20},
		{SystemID: "engine", PartName: "Fuel filter", TriggerType: models.TriggerHours, IntervalValue: 500, WarningBefore: 50},
	}
	state := models.VesselState{EngineHours: 120} // oil overdue, filter ok

	sys := c.SystemStatus("engine", "Main Engine", rules, state, nil)

	assert.Equal(t, models.SystemOverdue, sys.Status)
	assert.Equal(t, "1 part(s) overdue", sys.SummaryMessage)
	assert.Len(t, sys.Parts, 2)
}

func TestSystemStatus_MostUrgentDueSoonMessage(t *testing.T) {
	c := testCalculator(time.Now())
	rules := []models.MaintenanceRule{
		{SystemID: "engine", PartName: "Engine oil", TriggerType: models.TriggerHours, IntervalValue: 100, WarningBefore: 20},
		{SystemID: "engine", PartName: "Impeller", TriggerType: models.TriggerHours, IntervalValue: 95, WarningBefore: 20},
	}
	state := models.VesselState{EngineHours: 90} // oil remaining 10, impeller remaining 5

	sys := c.SystemStatus("engine", "Main Engine", rules, state, nil)

	assert.Equal(t, models.SystemDueSoon, sys.Status)
	assert.Equal(t, "Impeller due in 5 hours", sys.SummaryMessage)
}

func TestSystemStatus_AllOperational(t *testing.T) {
	c := testCalculator(time.Now())
	rules := []models.MaintenanceRule{
		{SystemID: "engine", PartName: "Engine oil", TriggerType: models.TriggerHours, IntervalValue: 100, WarningBefore: 20},
	}

	sys := c.SystemStatus("engine", "Main Engine", rules, models.VesselState{EngineHours: 10}, nil)

	assert.Equal(t, models.SystemOperational, sys.Status)
	assert.Equal(t, "All systems operational", sys.SummaryMessage)
}

func TestSystemStatus_NeverOperationalWithOverduePart(t *testing.T) {
	c := testCalculator(time.Now())
	rules := []models.MaintenanceRule{
		{SystemID: "engine", PartName: "A", TriggerType: models.TriggerHours, IntervalValue: 10, WarningBefore: 0},
		{SystemID: "engine", PartName: "B", TriggerType: models.TriggerHours, IntervalValue: 1000, WarningBefore: 0},
	}
	sys := c.SystemStatus("engine", "Main Engine", rules, models.VesselState{EngineHours: 50}, nil)

	assert.NotEqual(t, models.SystemOperational, sys.Status)
	assert.NotEqual(t, models.SystemDueSoon, sys.Status)
	assert.Equal(t, models.SystemOverdue, sys.Status)
}

func TestOverallStatus_PriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.SystemStatus
		expected models.SystemStatus
	}{
		{"empty", nil, models.SystemOperational},
		{"all operational", []models.SystemStatus{models.SystemOperational, models.SystemOperational}, models.SystemOperational},
		{"overdue beats everything", []models.SystemStatus{models.SystemDueSoon, models.SystemOverdue, models.SystemCritical}, models.SystemOverdue},
		{"due_soon beats critical", []models.SystemStatus{models.SystemCritical, models.SystemDueSoon}, models.SystemDueSoon},
		{"critical beats offline", []models.SystemStatus{models.SystemOffline, models.SystemCritical}, models.SystemCritical},
		{"offline beats operational", []models.SystemStatus{models.SystemOperational, models.SystemOffline}, models.SystemOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			systems := make([]models.SystemMaintenanceStatus, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				systems = append(systems, models.SystemMaintenanceStatus{Status: s})
			}
			assert.Equal(t, tt.expected, overallStatus(systems))
		})
	}
}

func TestVesselSummary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCalculator(now)

	rules := []models.MaintenanceRule{
		{SystemID: "engine", PartName: "Engine oil", TriggerType: models.TriggerHours, IntervalValue: 100, WarningBefore: 20},
		{SystemID: "nets", PartName: "Net inspection", TriggerType: models.TriggerTrips, IntervalValue: 3, WarningBefore: 1},
	}
	logs := []models.MaintenanceLog{
		{VesselID: "v1", SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-05-01", EngineHoursAtService: intPtr(100)},
	}
	state := models.VesselState{VesselID: "v1", EngineHours: 250, TotalTrips: 1}

	summary := c.VesselSummary("v1", "Seabird", state, rules, logs)

	assert.Equal(t, "v1", summary.VesselID)
	assert.Equal(t, "Seabird", summary.VesselName)
	assert.Equal(t, now, summary.GeneratedAt)
	assert.Len(t, summary.Systems, 2)

	// Engine oil anchored at 100, due at 200, 50 hours overdue.
	engine := summary.Systems[0]
	assert.Equal(t, "Main Engine", engine.SystemName)
	assert.Equal(t, models.SystemOverdue, engine.Status)
	assert.NotNil(t, engine.Parts[0].LastService)

	// Net inspection has no log, due at 3 with 1 trip taken.
	nets := summary.Systems[1]
	assert.Equal(t, "Nets & Gear", nets.SystemName)
	assert.Equal(t, models.SystemOperational, nets.Status)

	// One overdue system means the vessel can only be overdue.
	assert.Equal(t, models.SystemOverdue, summary.OverallStatus)
}

func TestVesselSummary_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testCalculator(now)

	rules := []models.MaintenanceRule{
		{SystemID: "engine", PartName: "Engine oil", TriggerType: models.TriggerHours, IntervalValue: 100, WarningBefore: 20},
		{SystemID: "safety", PartName: "Life raft service", TriggerType: models.TriggerDays, IntervalValue: 180, WarningBefore: 14},
		{SystemID: "engine", PartName: "Fuel filter", TriggerType: models.TriggerHours, IntervalValue: 500, WarningBefore: 50},
	}
	logs := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-04-01", EngineHoursAtService: intPtr(90)},
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-05-01", EngineHoursAtService: intPtr(140)},
	}
	state := models.VesselState{EngineHours: 160, TotalTrips: 9}

	first := c.VesselSummary("v1", "Seabird", state, rules, logs)
	second := c.VesselSummary("v1", "Seabird", state, rules, logs)

	assert.Equal(t, first, second)
}

func TestVesselSummary_UnknownSystemNameTitleCased(t *testing.T) {
	c := testCalculator(time.Now())
	rules := []models.MaintenanceRule{
		{SystemID: "winch", PartName: "Winch cable", TriggerType: models.TriggerTrips, IntervalValue: 50, WarningBefore: 5},
	}

	summary := c.VesselSummary("v1", "Seabird", models.VesselState{}, rules, nil)

	assert.Equal(t, "Winch", summary.Systems[0].SystemName)
}

func TestVesselSummary_InjectableSystemNames(t *testing.T) {
	c := testCalculator(time.Now())
	c.SystemNames["sonar"] = "Sonar Array"
	rules := []models.MaintenanceRule{
		{SystemID: "sonar", PartName: "Transducer check", TriggerType: models.TriggerDays, IntervalValue: 90, WarningBefore: 7},
	}

	summary := c.VesselSummary("v1", "Seabird", models.VesselState{}, rules, nil)

	assert.Equal(t, "Sonar Array", summary.Systems[0].SystemName)
}

func TestVesselSummary_NoRules(t *testing.T) {
	c := testCalculator(time.Now())

	summary := c.VesselSummary("v1", "Seabird", models.VesselState{}, nil, nil)

	assert.Empty(t, summary.Systems)
	assert.Equal(t, models.SystemOperational, summary.OverallStatus)
}

func TestApplyTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	state := models.VesselState{VesselID: "v1", EngineHours: 100, TotalTrips: 5}

	updated := ApplyTrip(state, 8.6, "2025-06-01", at)

	assert.Equal(t, 108, updated.EngineHours) // fractional hours truncate
	assert.Equal(t, 6, updated.TotalTrips)
	assert.Equal(t, "2025-06-01", updated.LastTripDate)
	assert.Equal(t, at, updated.UpdatedAt)
	// input snapshot untouched
	assert.Equal(t, 100, state.EngineHours)
}
