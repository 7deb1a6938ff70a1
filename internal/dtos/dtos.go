package dtos

import "github.com/resumatch/resumatch-backend/internal/models"

type AnalyzeRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
}

type SearchRequest struct {
	Analysis         models.Analysis `json:"analysis" binding:"required"`
	ExperienceFilter string          `json:"experienceFilter"`
	CompaniesFilter  string          `json:"companiesFilter"`
	FindMore         bool            `json:"findMore"`
	CurrentJobs      []models.Job    `json:"currentJobs"`

	// SessionID keys transient feedback for anonymous users; ignored when
	// a signed-in user is attached.
	SessionID string `json:"sessionId"`
}

type FeedbackRequest struct {
	ApplyLink string `json:"applyLink" binding:"required"`
	Reaction  string `json:"reaction" binding:"required,oneof=like dislike"`
	SessionID string `json:"sessionId"`
}

type SaveJobRequest struct {
	Job models.Job `json:"job" binding:"required"`
}

type ProfileRequest struct {
	UserProfile models.UserProfile `json:"userProfile" binding:"required"`
}

type ExtractResponse struct {
	Text        string `json:"text"`
	PreviewHTML string `json:"previewHtml,omitempty"`
}
