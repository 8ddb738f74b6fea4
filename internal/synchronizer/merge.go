package synchronizer

import "heater_dashboard/internal/models"

// Merge puts the fresh records first and appends the previous records whose
// sequence is not already present, keeping their relative order. The result
// is trimmed to limit entries; limit <= 0 disables trimming. Neither input is
// modified.
func Merge(fresh, previous []models.HistoryRecord, limit int) []models.HistoryRecord {
	merged := make([]models.HistoryRecord, 0, len(fresh)+len(previous))
	seen := make(map[int64]struct{}, len(fresh)+len(previous))

	for _, list := range [][]models.HistoryRecord{fresh, previous} {
		for _, rec := range list {
			if limit > 0 && len(merged) == limit {
				return merged
			}
			if _, dup := seen[rec.Sequence]; dup {
				continue
			}
			seen[rec.Sequence] = struct{}{}
			merged = append(merged, rec)
		}
	}
	return merged
}
