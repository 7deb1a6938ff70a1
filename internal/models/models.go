package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Analysis is the structured result of one resume-analysis call.
// Immutable once produced; a failed call never yields a partial one.
type Analysis struct {
	Summary                string  `json:"summary"`
	Skills                 []Skill `json:"skills"`
	Role                   string  `json:"role"`
	ATSScore               int     `json:"atsScore"`
	ExperienceLevel        string  `json:"experienceLevel"`
	ImprovementSuggestions string  `json:"improvementSuggestions"`
}

type Skill struct {
	SkillName  string `json:"skillName"`
	Prevalence int    `json:"prevalence"` // 1-5
}

// Job is one posting returned by the grounded search.
// Identity is ApplyLink string equality everywhere: save, feedback, dedup.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyLink   string `json:"applyLink"`
	SourceURL   string `json:"sourceUrl,omitempty"`
	DatePosted  string `json:"datePosted,omitempty"`
}

type AlertFrequency string

const (
	AlertDaily  AlertFrequency = "daily"
	AlertWeekly AlertFrequency = "weekly"
)

// UserProfile holds the user's stored search preferences. Every field is
// always populated (zero values, never undefined).
type UserProfile struct {
	PreferredTitles    string         `json:"preferredTitles"`
	MinSalary          string         `json:"minSalary"`
	MaxSalary          string         `json:"maxSalary"`
	CareerGoals        string         `json:"careerGoals"`
	LocationPreference string         `json:"locationPreference"`
	JobAlertsEnabled   bool           `json:"jobAlertsEnabled"`
	JobAlertsFrequency AlertFrequency `json:"jobAlertsFrequency"`
}

// DefaultProfile returns the profile a fresh user document starts with.
func DefaultProfile() UserProfile {
	return UserProfile{JobAlertsFrequency: AlertDaily}
}

// IsEmpty reports whether none of the searchable preference fields are set.
// Alert settings do not count: they never appear in search prompts.
func (p UserProfile) IsEmpty() bool {
	return p.PreferredTitles == "" && p.MinSalary == "" && p.MaxSalary == "" &&
		p.CareerGoals == "" && p.LocationPreference == ""
}

// SavedJobs is a set of jobs keyed by apply link. The slice order is
// insertion order; no two entries share an apply link.
type SavedJobs []Job

func (s SavedJobs) Contains(applyLink string) bool {
	for _, j := range s {
		if j.ApplyLink == applyLink {
			return true
		}
	}
	return false
}

// Toggle adds the job if absent and removes it if present. The returned
// bool reports whether the job is saved after the toggle.
func (s SavedJobs) Toggle(job Job) (SavedJobs, bool) {
	for i, j := range s {
		if j.ApplyLink == job.ApplyLink {
			return append(s[:i:i], s[i+1:]...), false
		}
	}
	return append(s, job), true
}

type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Feedback maps apply links to a single like/dislike reaction. A key never
// holds both: repeating a reaction clears it, the opposite one replaces it.
type Feedback map[string]Reaction

// Toggle applies a reaction to an apply link, returning the reaction now in
// effect ("" when the toggle cleared it).
func (f Feedback) Toggle(applyLink string, r Reaction) Reaction {
	if f[applyLink] == r {
		delete(f, applyLink)
		return ""
	}
	f[applyLink] = r
	return r
}

// Links returns the apply links currently carrying the given reaction.
func (f Feedback) Links(r Reaction) map[string]bool {
	out := make(map[string]bool)
	for link, got := range f {
		if got == r {
			out[link] = true
		}
	}
	return out
}

// UserDocument is the per-user store document: one row per uid holding the
// saved-jobs list and the profile as JSON columns, so profile saves and
// saved-job toggles each touch only their own column (merge semantics).
type UserDocument struct {
	UID         string         `gorm:"primaryKey" json:"uid"`
	Email       string         `json:"email"`
	SavedJobs   datatypes.JSON `json:"savedJobs"`
	UserProfile datatypes.JSON `json:"userProfile"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AnalysisRecord persists one analysis for a signed-in user.
type AnalysisRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UID       string         `gorm:"index" json:"uid"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
