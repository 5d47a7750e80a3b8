package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/models"
)

// defaultVolume seeds the background level of a new preferences row
var defaultVolume = 0.7

// SetDefaultVolume sets the level a first run starts with, normally the
// configured audio.background_volume
func SetDefaultVolume(level float64) {
	if level < 0 || level > 1 {
		return
	}
	defaultVolume = level
}

// LoadPreferences returns the saved selection, creating the row on first
// use. A saved story voice is reset to none and the reset is written back,
// so a narration is never replayed on launch.
func LoadPreferences() (*models.Preference, error) {
	var pref models.Preference

	err := DB.First(&pref, models.PreferenceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.Preference{
			ID:               models.PreferenceID,
			ModeID:           catalog.DefaultModeID,
			Voice:            catalog.VoiceNone.Key(),
			BackgroundVolume: defaultVolume,
			TrackID:          catalog.SilenceTrackID,
		}
		if err := DB.Create(&pref).Error; err != nil {
			return nil, fmt.Errorf("failed to create preferences: %w", err)
		}
		return &pref, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	voice, err := catalog.ParseVoice(pref.Voice)
	if err != nil {
		voice = catalog.VoiceNone
	}
	if restored := voice.OnLaunch(); restored.Key() != pref.Voice {
		pref.Voice = restored.Key()
		if err := DB.Save(&pref).Error; err != nil {
			return nil, fmt.Errorf("failed to reset voice: %w", err)
		}
	}

	return &pref, nil
}

// SaveMode stores the selected breathing mode
func SaveMode(modeID int) error {
	if _, ok := catalog.ModeByID(modeID); !ok {
		return fmt.Errorf("mode #%d not found", modeID)
	}
	return updatePreference("mode_id", modeID)
}

// SaveVoice stores the selected voice
func SaveVoice(voice catalog.Voice) error {
	return updatePreference("voice", voice.Key())
}

// SaveVolume stores the background volume
func SaveVolume(level float64) error {
	if level < 0 || level > 1 {
		return fmt.Errorf("volume must be between 0 and 1, got %v", level)
	}
	return updatePreference("background_volume", level)
}

// SaveTrack stores the ambient track
func SaveTrack(trackID int) error {
	if _, ok := catalog.TrackByID(trackID); !ok {
		return fmt.Errorf("track #%d not found", trackID)
	}
	return updatePreference("track_id", trackID)
}

func updatePreference(column string, value interface{}) error {
	if _, err := LoadPreferences(); err != nil {
		return err
	}
	return DB.Model(&models.Preference{ID: models.PreferenceID}).Update(column, value).Error
}
