package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestSelectLatest_CreatedAtWins(t *testing.T) {
	older := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	logs := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil", CreatedAt: timePtr(newer), Technician: "A"},
		{SystemID: "engine", PartName: "Engine oil", CreatedAt: timePtr(older), Technician: "B"},
	}

	latest := SelectLatest(logs)

	assert.Equal(t, "A", latest["engine"]["Engine oil"].Technician)
}

func TestSelectLatest_CreatedAtPresenceBeatsAbsence(t *testing.T) {
	// Log B has created_at; log A only has a higher engine-hour counter.
	// Presence of created_at wins.
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	logA := models.MaintenanceLog{
		SystemID: "engine", PartName: "Engine oil",
		EngineHoursAtService: intPtr(50), Technician: "A",
	}
	logB := models.MaintenanceLog{
		SystemID: "engine", PartName: "Engine oil",
		CreatedAt: timePtr(created), EngineHoursAtService: intPtr(30), Technician: "B",
	}

	latest := SelectLatest([]models.MaintenanceLog{logA, logB})
	assert.Equal(t, "B", latest["engine"]["Engine oil"].Technician)

	// Same winner in the opposite input order.
	latest = SelectLatest([]models.MaintenanceLog{logB, logA})
	assert.Equal(t, "B", latest["engine"]["Engine oil"].Technician)
}

func TestSelectLatest_DoneAtFallback(t *testing.T) {
	logs := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-01-15", Technician: "old"},
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-04-02", Technician: "new"},
	}

	latest := SelectLatest(logs)

	assert.Equal(t, "new", latest["engine"]["Engine oil"].Technician)
}

func TestSelectLatest_EngineHoursFallback(t *testing.T) {
	// Neither log has created_at, done_at on one does not parse, so the
	// numeric counter decides.
	logs := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "unknown", EngineHoursAtService: intPtr(200), Technician: "later"},
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-01-15", EngineHoursAtService: intPtr(120), Technician: "earlier"},
	}

	latest := SelectLatest(logs)

	assert.Equal(t, "later", latest["engine"]["Engine oil"].Technician)
}

func TestSelectLatest_TripsFallback(t *testing.T) {
	logs := []models.MaintenanceLog{
		{SystemID: "nets", PartName: "Net inspection", TripsAtService: intPtr(3), Technician: "earlier"},
		{SystemID: "nets", PartName: "Net inspection", TripsAtService: intPtr(7), Technician: "later"},
	}

	latest := SelectLatest(logs)

	assert.Equal(t, "later", latest["nets"]["Net inspection"].Technician)
}

func TestSelectLatest_FullTieKeepsFirstSeen(t *testing.T) {
	logs := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil", Technician: "first"},
		{SystemID: "engine", PartName: "Engine oil", Technician: "second"},
	}

	latest := SelectLatest(logs)

	assert.Equal(t, "first", latest["engine"]["Engine oil"].Technician)
}

func TestSelectLatest_KeysBySystemAndPart(t *testing.T) {
	logs := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil", Technician: "a"},
		{SystemID: "engine", PartName: "Fuel filter", Technician: "b"},
		{SystemID: "nets", PartName: "Engine oil", Technician: "c"}, // same part name, different system
	}

	latest := SelectLatest(logs)

	assert.Len(t, latest["engine"], 2)
	assert.Equal(t, "c", latest["nets"]["Engine oil"].Technician)
}

func TestNewerLog_DeterministicUnderReordering(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	candidates := []models.MaintenanceLog{
		{SystemID: "engine", PartName: "Engine oil"},
		{SystemID: "engine", PartName: "Engine oil", CreatedAt: timePtr(created)},
		{SystemID: "engine", PartName: "Engine oil", CreatedAt: timePtr(created.Add(time.Hour))},
		{SystemID: "engine", PartName: "Engine oil", DoneAt: "2025-03-01"},
		{SystemID: "engine", PartName: "Engine oil", EngineHoursAtService: intPtr(500)},
	}

	// Whenever the cascade decides between a pair, it must decide the same
	// way with the arguments swapped.
	for i := range candidates {
		for j := range candidates {
			if i == j {
				continue
			}
			a, b := &candidates[i], &candidates[j]
			if newerLog(a, b) {
				assert.False(t, newerLog(b, a), "cascade not antisymmetric for %d vs %d", i, j)
			}
		}
	}
}
