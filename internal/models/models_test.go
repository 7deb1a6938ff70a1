package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(link string) Job {
	return Job{Title: "SWE", Company: "Acme", ApplyLink: link}
}

func TestSavedJobsToggle(t *testing.T) {
	var saved SavedJobs

	saved, nowSaved := saved.Toggle(job("https://x/1"))
	require.True(t, nowSaved)
	require.Len(t, saved, 1)

	// Same applyLink, different title: still the same job.
	dup := job("https://x/1")
	dup.Title = "Software Engineer II"
	saved, nowSaved = saved.Toggle(dup)
	assert.False(t, nowSaved)
	assert.Len(t, saved, 0)
}

func TestSavedJobsToggleRemovesExactlyOne(t *testing.T) {
	saved := SavedJobs{job("https://x/1"), job("https://x/2"), job("https://x/3")}

	saved, nowSaved := saved.Toggle(job("https://x/2"))
	require.False(t, nowSaved)
	require.Len(t, saved, 2)
	assert.False(t, saved.Contains("https://x/2"))
	assert.True(t, saved.Contains("https://x/1"))
	assert.True(t, saved.Contains("https://x/3"))
}

func TestFeedbackToggle(t *testing.T) {
	fb := Feedback{}

	got := fb.Toggle("https://x/1", ReactionLike)
	require.Equal(t, ReactionLike, got)
	require.Equal(t, ReactionLike, fb["https://x/1"])

	// Same reaction again clears it.
	got = fb.Toggle("https://x/1", ReactionLike)
	assert.Equal(t, Reaction(""), got)
	_, exists := fb["https://x/1"]
	assert.False(t, exists)

	// Opposite reaction replaces, never coexists.
	fb.Toggle("https://x/1", ReactionLike)
	got = fb.Toggle("https://x/1", ReactionDislike)
	assert.Equal(t, ReactionDislike, got)
	assert.Len(t, fb, 1)
}

func TestFeedbackLinks(t *testing.T) {
	fb := Feedback{
		"https://x/1": ReactionLike,
		"https://x/2": ReactionDislike,
		"https://x/3": ReactionLike,
	}
	likes := fb.Links(ReactionLike)
	assert.True(t, likes["https://x/1"])
	assert.True(t, likes["https://x/3"])
	assert.False(t, likes["https://x/2"])
}

func TestDefaultProfilePopulated(t *testing.T) {
	p := DefaultProfile()
	assert.False(t, p.JobAlertsEnabled)
	assert.Equal(t, AlertDaily, p.JobAlertsFrequency)
	assert.True(t, p.IsEmpty())

	p.MinSalary = "50000"
	assert.False(t, p.IsEmpty())
}
