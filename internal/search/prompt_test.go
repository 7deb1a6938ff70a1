package search

import (
	"strings"
	"testing"

	"github.com/resumatch/resumatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendAnalysis() models.Analysis {
	return models.Analysis{
		Role:            "Backend Engineer",
		ExperienceLevel: "Mid-level",
		Skills:          []models.Skill{{SkillName: "Go", Prevalence: 4}},
		Summary:         "Experienced backend engineer.",
	}
}

func TestFirstSearchRequestsTenJobsInIndia(t *testing.T) {
	prompt := BuildJobSearchPrompt(PromptParams{Analysis: backendAnalysis()})

	assert.Contains(t, prompt, "Find exactly 10 matching jobs")
	assert.Contains(t, prompt, "India")
	assert.Contains(t, prompt, "Ideal role: Backend Engineer")
	assert.Contains(t, prompt, "concrete application URL")
	assert.Contains(t, prompt, "fenced code block labeled json")
}

func TestEmptyProfileOmitted(t *testing.T) {
	empty := models.DefaultProfile()
	prompt := BuildJobSearchPrompt(PromptParams{
		Analysis: backendAnalysis(),
		Profile:  &empty,
	})
	assert.NotContains(t, prompt, "preferences from their profile")

	nilPrompt := BuildJobSearchPrompt(PromptParams{Analysis: backendAnalysis()})
	assert.Equal(t, nilPrompt, prompt)
}

func TestSalaryRangeFormatting(t *testing.T) {
	tests := []struct {
		name string
		min  string
		max  string
		want string
	}{
		{"both bounds", "50000", "150000", "₹50,000 - ₹1,50,000"},
		{"min only, no dangling separator", "50000", "", "₹50,000"},
		{"max only", "", "80000", "₹80,000"},
		{"both empty", "", "", ""},
		{"free text passes through", "negotiable", "", "negotiable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSalaryRange(tt.min, tt.max)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSalaryLineHasNoTrailingSeparator(t *testing.T) {
	profile := models.DefaultProfile()
	profile.MinSalary = "50000"
	prompt := BuildJobSearchPrompt(PromptParams{
		Analysis: backendAnalysis(),
		Profile:  &profile,
	})

	require.Contains(t, prompt, "Expected salary: ₹50,000\n")
	assert.NotContains(t, prompt, "₹50,000 - ")
}

func TestFindMoreEmbedsCurrentJobs(t *testing.T) {
	prompt := BuildJobSearchPrompt(PromptParams{
		Analysis: backendAnalysis(),
		FindMore: true,
		Current:  []models.Job{{Title: "A", Company: "X", ApplyLink: "https://x/a"}},
	})

	require.Contains(t, prompt, "Do NOT return any job already shown")
	exclusionIdx := strings.Index(prompt, "Do NOT return")
	lineIdx := strings.Index(prompt, "- A at X")
	require.NotEqual(t, -1, lineIdx)
	assert.Greater(t, lineIdx, exclusionIdx, "exclusion line must appear under the instruction")
	assert.NotContains(t, prompt, "Find exactly 10")
}

func TestPreferredCompaniesWeightedNotExclusive(t *testing.T) {
	prompt := BuildJobSearchPrompt(PromptParams{
		Analysis:        backendAnalysis(),
		CompaniesFilter: "Google, Stripe",
	})
	assert.Contains(t, prompt, "Google, Stripe")
	assert.Contains(t, prompt, "do not search them exclusively")
}

func TestPromptIsDeterministic(t *testing.T) {
	profile := models.DefaultProfile()
	profile.PreferredTitles = "Platform Engineer"
	params := PromptParams{
		Analysis: backendAnalysis(),
		Profile:  &profile,
		Liked:    []models.Job{{Title: "L", Company: "C", ApplyLink: "https://x/l"}},
	}
	assert.Equal(t, BuildJobSearchPrompt(params), BuildJobSearchPrompt(params))
}

func TestDeriveSignals(t *testing.T) {
	jobA := models.Job{Title: "A", Company: "X", ApplyLink: "https://x/a"}
	jobB := models.Job{Title: "B", Company: "Y", ApplyLink: "https://x/b"}
	jobC := models.Job{Title: "C", Company: "Z", ApplyLink: "https://x/c"}

	fb := models.Feedback{
		jobA.ApplyLink: models.ReactionLike,
		jobB.ApplyLink: models.ReactionDislike,
	}
	saved := models.SavedJobs{jobC, jobA} // jobA both liked and saved

	liked, disliked := DeriveSignals(fb, saved, []models.Job{jobA, jobB, jobC})

	// Liked is the union, deduplicated by applyLink.
	require.Len(t, liked, 2)
	assert.Equal(t, "https://x/a", liked[0].ApplyLink)
	assert.Equal(t, "https://x/c", liked[1].ApplyLink)

	require.Len(t, disliked, 1)
	assert.Equal(t, "https://x/b", disliked[0].ApplyLink)
}

func TestDeriveSignalsSavedOverlayResurrectsDisliked(t *testing.T) {
	// A saved job that was also disliked stays in both signal sets: dislike
	// and save are independent, and the saved overlay wins for liked.
	jobA := models.Job{Title: "A", Company: "X", ApplyLink: "https://x/a"}
	fb := models.Feedback{jobA.ApplyLink: models.ReactionDislike}
	saved := models.SavedJobs{jobA}

	liked, disliked := DeriveSignals(fb, saved, []models.Job{jobA})
	require.Len(t, liked, 1)
	require.Len(t, disliked, 1)
	assert.Equal(t, liked[0].ApplyLink, disliked[0].ApplyLink)
}
