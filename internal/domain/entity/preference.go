package entity

import (
	"time"

	"github.com/google/uuid"
)

// PreferenceEntry is the running score of one profile for one tag.
// There is at most one entry per (profile, tag).
type PreferenceEntry struct {
	ID        int64
	ProfileID uuid.UUID
	Tag       Tag
	Score     int
	UpdatedAt time.Time
}

// IsLiked reports whether the entry is shown as a current preference. Score <= 0 is hidden.
func (p *PreferenceEntry) IsLiked() bool {
	return p.Score > 0
}
