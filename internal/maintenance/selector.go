package maintenance

import (
	"github.com/Thenushan05/FishSpot-Backend/internal/models"
)

// A logComparator compares two logs for the same part and returns >0 if a is
// more recent, <0 if b is, and 0 if it cannot decide. Comparators are applied
// in cascade order; the first decisive one wins.
type logComparator func(a, b *models.MaintenanceLog) int

// latestLogCascade is the ordered tie-break policy for duplicate logs.
// Manually-entered logs may lack created_at or carry an inconsistent done_at,
// so the cascade falls through to the numeric counters rather than silently
// keeping a stale record.
var latestLogCascade = []logComparator{
	compareCreatedAt,
	compareDoneAt,
	compareEngineHours,
	compareTripsAt,
}

// compareCreatedAt prefers the later insertion timestamp. A log that has
// created_at at all beats one that does not: a recorded creation time is more
// authoritative than none.
func compareCreatedAt(a, b *models.MaintenanceLog) int {
	switch {
	case a.CreatedAt != nil && b.CreatedAt != nil:
		if a.CreatedAt.After(*b.CreatedAt) {
			return 1
		}
		if b.CreatedAt.After(*a.CreatedAt) {
			return -1
		}
		return 0
	case a.CreatedAt != nil:
		return 1
	case b.CreatedAt != nil:
		return -1
	default:
		return 0
	}
}

// compareDoneAt prefers the later service date. Decisive only when both dates
// parse.
func compareDoneAt(a, b *models.MaintenanceLog) int {
	at, aok := parseTimestamp(a.DoneAt)
	bt, bok := parseTimestamp(b.DoneAt)
	if !aok || !bok {
		return 0
	}
	if at.After(bt) {
		return 1
	}
	if bt.After(at) {
		return -1
	}
	return 0
}

// compareEngineHours prefers the higher engine-hour counter. Decisive only
// when both logs recorded one.
func compareEngineHours(a, b *models.MaintenanceLog) int {
	if a.EngineHoursAtService == nil || b.EngineHoursAtService == nil {
		return 0
	}
	return *a.EngineHoursAtService - *b.EngineHoursAtService
}

// compareTripsAt prefers the higher trip counter. Decisive only when both
// logs recorded one.
func compareTripsAt(a, b *models.MaintenanceLog) int {
	if a.TripsAtService == nil || b.TripsAtService == nil {
		return 0
	}
	return *a.TripsAtService - *b.TripsAtService
}

// newerLog reports whether candidate should replace current as the latest log
// for a part. A full tie keeps the current (first-seen) log.
func newerLog(candidate, current *models.MaintenanceLog) bool {
	for _, cmp := range latestLogCascade {
		if d := cmp(candidate, current); d != 0 {
			return d > 0
		}
	}
	return false
}

// SelectLatest reduces a vessel's full log history to the single most recent
// log per (system, part) pair, keyed first by system id then by part name.
func SelectLatest(logs []models.MaintenanceLog) map[string]map[string]*models.MaintenanceLog {
	latest := make(map[string]map[string]*models.MaintenanceLog)
	for i := range logs {
		log := &logs[i]
		parts, ok := latest[log.SystemID]
		if !ok {
			parts = make(map[string]*models.MaintenanceLog)
			latest[log.SystemID] = parts
		}
		current, ok := parts[log.PartName]
		if !ok || newerLog(log, current) {
			parts[log.PartName] = log
		}
	}
	return latest
}
