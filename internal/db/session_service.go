package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/breathe/internal/models"
)

// StartPractice starts tracking a new practice
func StartPractice(kind string, modeID int, voice string) (*models.Practice, error) {
	// Check if there's already an active practice
	var active models.Practice
	err := DB.Where("finished_at IS NULL").First(&active).Error
	if err == nil {
		return nil, fmt.Errorf("practice #%d is still being tracked. Stop it first with 'breathe stop'", active.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check active practice: %w", err)
	}

	practice := models.Practice{
		Kind:      kind,
		ModeID:    modeID,
		Voice:     voice,
		StartedAt: time.Now(),
	}

	if err := DB.Create(&practice).Error; err != nil {
		return nil, err
	}

	return &practice, nil
}

// StopActivePractice stops the currently tracked practice
func StopActivePractice(cycles int) (*models.Practice, error) {
	var practice models.Practice

	// Find active practice
	err := DB.Where("finished_at IS NULL").First(&practice).Error
	if err != nil {
		return nil, fmt.Errorf("no active practice found")
	}

	now := time.Now()
	practice.FinishedAt = &now
	practice.DurationSeconds = int(now.Sub(practice.StartedAt).Seconds())
	if cycles > practice.Cycles {
		practice.Cycles = cycles
	}

	if err := DB.Save(&practice).Error; err != nil {
		return nil, err
	}

	return &practice, nil
}

// GetActivePractice returns the currently tracked practice, if any
func GetActivePractice() (*models.Practice, error) {
	var practice models.Practice

	err := DB.Where("finished_at IS NULL").First(&practice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No active practice is not an error
	}
	if err != nil {
		return nil, err
	}

	return &practice, nil
}

// GetPracticesInRange returns finished practices started within the range
func GetPracticesInRange(startTime, endTime time.Time) ([]models.Practice, error) {
	var practices []models.Practice

	err := DB.Where("started_at >= ? AND started_at <= ? AND finished_at IS NOT NULL", startTime, endTime).
		Order("started_at ASC, id ASC").
		Find(&practices).Error

	if err != nil {
		return nil, err
	}

	return practices, nil
}

// RecentPractices returns the latest finished practices, newest first
func RecentPractices(limit int) ([]models.Practice, error) {
	var practices []models.Practice

	err := DB.Where("finished_at IS NOT NULL").
		Order("started_at DESC, id DESC").
		Limit(limit).
		Find(&practices).Error

	if err != nil {
		return nil, err
	}

	return practices, nil
}
