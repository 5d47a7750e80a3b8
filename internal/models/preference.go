package models

import "time"

// PreferenceID is the primary key of the single preferences row
const PreferenceID = 1

// Preference holds the persisted user selection
type Preference struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	ModeID           int     `json:"mode_id"`
	Voice            string  `json:"voice"` // catalog voice key
	BackgroundVolume float64 `json:"background_volume"`
	TrackID          int     `json:"track_id"` // catalog track, 0 is silence
}
