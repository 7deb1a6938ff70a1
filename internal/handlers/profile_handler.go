package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resumatch/resumatch-backend/internal/auth"
	"github.com/resumatch/resumatch-backend/internal/dtos"
	"github.com/resumatch/resumatch-backend/internal/models"
	"github.com/resumatch/resumatch-backend/internal/services"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// GetProfile is the GET /profile endpoint (auth required): fetches the
// user's document, creating it with defaults on first sign-in.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrNotSignedIn.Error()})
		return
	}

	saved, profile, err := h.Profiles.FetchOrInitProfile(c.Request.Context(), user.UID)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load profile"})
		return
	}
	h.Profiles.RecordEmail(c.Request.Context(), user.UID, user.Email)

	if saved == nil {
		saved = models.SavedJobs{}
	}
	c.JSON(http.StatusOK, gin.H{"userProfile": profile, "savedJobs": saved})
}

// SaveProfile is the PUT /profile endpoint (auth required). Merge
// semantics: only the profile column changes, saved jobs stay put.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrNotSignedIn.Error()})
		return
	}

	var req dtos.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.UserProfile.JobAlertsFrequency != "" &&
		req.UserProfile.JobAlertsFrequency != models.AlertDaily &&
		req.UserProfile.JobAlertsFrequency != models.AlertWeekly {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobAlertsFrequency must be daily or weekly"})
		return
	}

	if err := h.Profiles.SaveProfile(c.Request.Context(), user.UID, req.UserProfile); err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userProfile": req.UserProfile})
}
