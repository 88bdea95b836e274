package matching

import "github.com/syedahibahasan/study-sync-backend/models"

// HasConflict reports whether adopting the proposal would collide with the
// user's hard commitments. Only busyTimes block a match; overlap with
// study-group time from other groups is allowed. Days absent from the
// schedule contribute no conflict, and an empty proposal is vacuously
// compatible.
func HasConflict(schedule models.UserSchedule, proposal []models.TimeSelection) bool {
	for _, sel := range proposal {
		ds := schedule.Day(sel.Day)
		if ds == nil {
			continue
		}
		if ds.BusyTimes.Intersects(sel.Times) {
			return true
		}
	}
	return false
}

// FilterMatching returns the candidates whose proposals are conflict-free
// against the schedule, preserving input order. Candidates are expected to
// be pre-filtered on course, location and membership by the group query;
// this is only the time-compatibility pass. Side-effect free.
func FilterMatching(candidates []models.Group, schedule models.UserSchedule) []models.Group {
	matched := make([]models.Group, 0, len(candidates))
	for _, g := range candidates {
		if !HasConflict(schedule, g.SelectedTimes) {
			matched = append(matched, g)
		}
	}
	return matched
}
