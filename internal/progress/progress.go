package progress

import "github.com/samber/lo"

// DefaultNamespace is the fixed key the progress document is stored under.
const DefaultNamespace = "aperture-progress"

// Record is the persisted outcome of a single lesson.
type Record struct {
	Completed bool `json:"completed"`
	Rating    *int `json:"rating"`
}

// Map holds one Record per lesson id.
type Map map[string]Record

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for id, r := range m {
		if r.Rating != nil {
			rating := *r.Rating
			r.Rating = &rating
		}
		out[id] = r
	}
	return out
}

// CompletedCount returns the number of completed lessons in m, including
// ids that may no longer be in any catalog.
func (m Map) CompletedCount() int {
	return len(lo.PickBy(m, func(_ string, r Record) bool { return r.Completed }))
}

// CompletedAmong returns how many of lessonIDs are completed.
func (m Map) CompletedAmong(lessonIDs []string) int {
	return lo.CountBy(lessonIDs, m.Completed)
}

// Completed reports whether lessonID is marked completed.
func (m Map) Completed(lessonID string) bool {
	return m[lessonID].Completed
}

// AllCompleted reports whether every id in lessonIDs is completed.
func (m Map) AllCompleted(lessonIDs []string) bool {
	return lo.EveryBy(lessonIDs, m.Completed)
}
