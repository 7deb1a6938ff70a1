package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/resumatch/resumatch-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotSignedIn is returned before any store access when no authenticated
// user is attached to the operation.
var ErrNotSignedIn = errors.New("must be signed in")

const storeWriteAttempts = 3

// ProfileService is the session/profile store adapter: it owns the per-user
// document {savedJobs, userProfile} and enforces merge semantics, so a
// profile save never clobbers saved jobs and vice versa.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// FetchOrInitProfile returns the user's document, creating one with an
// empty saved list and a default profile on first sight.
func (s *ProfileService) FetchOrInitProfile(ctx context.Context, uid string) (models.SavedJobs, models.UserProfile, error) {
	if uid == "" {
		return nil, models.UserProfile{}, ErrNotSignedIn
	}

	doc := models.UserDocument{UID: uid}
	emptySaved, _ := json.Marshal(models.SavedJobs{})
	defaultProfile, _ := json.Marshal(models.DefaultProfile())
	err := s.DB.WithContext(ctx).
		Where(models.UserDocument{UID: uid}).
		Attrs(models.UserDocument{
			SavedJobs:   datatypes.JSON(emptySaved),
			UserProfile: datatypes.JSON(defaultProfile),
		}).
		FirstOrCreate(&doc).Error
	if err != nil {
		return nil, models.UserProfile{}, fmt.Errorf("could not load profile: %w", err)
	}

	var saved models.SavedJobs
	if len(doc.SavedJobs) > 0 {
		if err := json.Unmarshal(doc.SavedJobs, &saved); err != nil {
			return nil, models.UserProfile{}, fmt.Errorf("could not load profile: %w", err)
		}
	}
	profile := models.DefaultProfile()
	if len(doc.UserProfile) > 0 {
		if err := json.Unmarshal(doc.UserProfile, &profile); err != nil {
			return nil, models.UserProfile{}, fmt.Errorf("could not load profile: %w", err)
		}
	}
	if profile.JobAlertsFrequency == "" {
		profile.JobAlertsFrequency = models.AlertDaily
	}
	return saved, profile, nil
}

// SaveProfile upserts only the user_profile column; saved jobs are left
// untouched.
func (s *ProfileService) SaveProfile(ctx context.Context, uid string, profile models.UserProfile) error {
	if uid == "" {
		return ErrNotSignedIn
	}
	if profile.JobAlertsFrequency == "" {
		profile.JobAlertsFrequency = models.AlertDaily
	}

	// Ensure the document exists so a profile save on a brand-new user
	// still lands on a row with an empty saved list.
	if _, _, err := s.FetchOrInitProfile(ctx, uid); err != nil {
		return err
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("could not save profile: %w", err)
	}

	_, err = retry(storeWriteAttempts, func() (any, error) {
		return nil, s.DB.WithContext(ctx).
			Model(&models.UserDocument{}).
			Where("uid = ?", uid).
			Update("user_profile", datatypes.JSON(payload)).Error
	})
	if err != nil {
		return fmt.Errorf("could not save profile: %w", err)
	}
	return nil
}

// ToggleSavedJob adds the job if absent and removes it if present,
// rewriting only the saved_jobs column. Returns whether the job is saved
// after the toggle, plus the authoritative saved list (the client uses it
// to roll back an optimistic toggle on failure).
func (s *ProfileService) ToggleSavedJob(ctx context.Context, uid string, job models.Job) (bool, models.SavedJobs, error) {
	if uid == "" {
		return false, nil, ErrNotSignedIn
	}

	saved, _, err := s.FetchOrInitProfile(ctx, uid)
	if err != nil {
		return false, nil, err
	}

	updated, nowSaved := saved.Toggle(job)
	payload, err := json.Marshal(updated)
	if err != nil {
		return false, saved, fmt.Errorf("could not save job: %w", err)
	}

	_, err = retry(storeWriteAttempts, func() (any, error) {
		return nil, s.DB.WithContext(ctx).
			Model(&models.UserDocument{}).
			Where("uid = ?", uid).
			Update("saved_jobs", datatypes.JSON(payload)).Error
	})
	if err != nil {
		// Write failed: report the pre-toggle list as authoritative.
		return !nowSaved, saved, fmt.Errorf("could not save job: %w", err)
	}
	return nowSaved, updated, nil
}

// RecordEmail stores the signed-in user's email on their document so the
// alert mailer knows where to deliver. No-op when nothing changes.
func (s *ProfileService) RecordEmail(ctx context.Context, uid, email string) {
	if uid == "" || email == "" {
		return
	}
	err := s.DB.WithContext(ctx).
		Model(&models.UserDocument{}).
		Where("uid = ? AND email <> ?", uid, email).
		Update("email", email).Error
	if err != nil {
		log.Printf("⚠️ Failed to record email for %s: %v", uid, err)
	}
}

// AlertTarget is one user due for a job-alert run.
type AlertTarget struct {
	UID     string
	Email   string
	Profile models.UserProfile
}

// AlertUsers returns every user whose stored profile has alerts enabled at
// the given frequency and who has a deliverable email.
func (s *ProfileService) AlertUsers(ctx context.Context, freq models.AlertFrequency) ([]AlertTarget, error) {
	var docs []models.UserDocument
	if err := s.DB.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("could not load alert users: %w", err)
	}

	var out []AlertTarget
	for _, doc := range docs {
		var profile models.UserProfile
		if err := json.Unmarshal(doc.UserProfile, &profile); err != nil {
			continue
		}
		if profile.JobAlertsEnabled && profile.JobAlertsFrequency == freq && doc.Email != "" {
			out = append(out, AlertTarget{UID: doc.UID, Email: doc.Email, Profile: profile})
		}
	}
	return out, nil
}
