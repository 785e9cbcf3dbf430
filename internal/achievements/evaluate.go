package achievements

import "time"

// Evaluate re-runs every rule over the full history. It returns an updated
// copy of current and the achievements that unlocked in this call. Already
// unlocked achievements are never re-emitted and never re-locked; current
// itself is not modified.
func Evaluate(h History, current []Achievement) (updated []Achievement, newlyUnlocked []Achievement) {
	now := h.Now
	if now.IsZero() {
		now = time.Now()
	}

	updated = make([]Achievement, len(current))
	copy(updated, current)

	for i := range updated {
		a := &updated[i]
		if a.Unlocked || a.Rule == nil {
			continue
		}
		if a.Rule.Satisfied(h) {
			a.Unlocked = true
			a.UnlockedAt = now
			newlyUnlocked = append(newlyUnlocked, *a)
		}
	}
	return updated, newlyUnlocked
}
