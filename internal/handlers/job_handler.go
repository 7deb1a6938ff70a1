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

type JobHandler struct {
	Search   *services.JobSearchService
	Profiles *services.ProfileService
	Feedback *services.FeedbackService
}

func NewJobHandler(searchSvc *services.JobSearchService, profiles *services.ProfileService, feedback *services.FeedbackService) *JobHandler {
	return &JobHandler{Search: searchSvc, Profiles: profiles, Feedback: feedback}
}

// sessionKey picks the feedback key: uid when signed in, the client's
// session id otherwise.
func sessionKey(user *auth.User, sessionID string) string {
	if user != nil {
		return user.UID
	}
	return sessionID
}

// SearchJobs is the POST /jobs/search endpoint, for both the first search
// and find-more. Signed-in users get their stored profile and saved jobs
// folded into the prompt; anonymous searches run on the analysis alone.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dtos.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Analysis.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Analysis with a suggested role is required"})
		return
	}

	user := auth.CurrentUser(c)
	params := services.SearchParams{
		Analysis:         req.Analysis,
		ExperienceFilter: req.ExperienceFilter,
		CompaniesFilter:  req.CompaniesFilter,
		FindMore:         req.FindMore,
		Current:          req.CurrentJobs,
	}

	if key := sessionKey(user, req.SessionID); key != "" {
		params.Feedback = h.Feedback.Get(key)
	}
	if user != nil {
		saved, profile, err := h.Profiles.FetchOrInitProfile(c.Request.Context(), user.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load profile: " + err.Error()})
			return
		}
		params.Saved = saved
		params.Profile = &profile
	}

	jobs, err := h.Search.Search(c.Request.Context(), params)
	if err != nil {
		// Model transport failures and a broken output contract both land
		// here; neither is retryable from this side.
		c.JSON(http.StatusBadGateway, gin.H{"error": "Job search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// ToggleFeedback is the POST /jobs/feedback endpoint. Feedback is
// session-transient; a repeated identical reaction toggles it off.
func (h *JobHandler) ToggleFeedback(c *gin.Context) {
	var req dtos.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	key := sessionKey(auth.CurrentUser(c), req.SessionID)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A sessionId is required when not signed in"})
		return
	}

	fb := h.Feedback.Toggle(key, req.ApplyLink, models.Reaction(req.Reaction))
	c.JSON(http.StatusOK, gin.H{"feedback": fb})
}

// ToggleSave is the POST /jobs/save endpoint (auth required). On store
// failure the response carries the authoritative saved list so the client
// can roll back its optimistic toggle.
func (h *JobHandler) ToggleSave(c *gin.Context) {
	var req dtos.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Job.ApplyLink == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job applyLink is required"})
		return
	}

	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrNotSignedIn.Error()})
		return
	}

	saved, list, err := h.Profiles.ToggleSavedJob(c.Request.Context(), user.UID, req.Job)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Could not save job",
			"saved":     saved,
			"savedJobs": list,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved, "savedJobs": list})
}
