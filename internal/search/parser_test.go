package search

import (
	"testing"

	"github.com/resumatch/resumatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobsExtractsFencedBlock(t *testing.T) {
	raw := "Here are some jobs I found for you.\n\n```json\n" +
		`{"jobs":[{"title":"SWE","company":"Acme","location":"Bangalore","description":"Build services.","applyLink":"https://x/1"}]}` +
		"\n```\n\nGood luck with your applications!"

	jobs, err := ParseJobs(raw)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "SWE", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "https://x/1", jobs[0].ApplyLink)
}

func TestParseJobsNoFenceIsHardFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain text", "Sorry, I could not find any jobs."},
		{"bare json without fence", `{"jobs":[]}`},
		{"opening fence never closed", "```json\n{\"jobs\":[]}"},
		{"empty input", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := ParseJobs(tt.raw)
			require.ErrorIs(t, err, ErrNoJobsBlock)
			assert.Nil(t, jobs)
		})
	}
}

func TestParseJobsEmptyArrayIsSuccess(t *testing.T) {
	jobs, err := ParseJobs("```json\n{\"jobs\":[]}\n```")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestParseJobsMissingArrayIsSuccess(t *testing.T) {
	jobs, err := ParseJobs("```json\n{}\n```")
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestParseJobsMalformedJSONInsideFence(t *testing.T) {
	_, err := ParseJobs("```json\n{\"jobs\": [oops\n```")
	assert.ErrorIs(t, err, ErrNoJobsBlock)
}

func TestParseJobsUsesFirstFence(t *testing.T) {
	raw := "```json\n{\"jobs\":[{\"title\":\"First\",\"company\":\"A\",\"applyLink\":\"https://x/1\"}]}\n```\n" +
		"```json\n{\"jobs\":[{\"title\":\"Second\",\"company\":\"B\",\"applyLink\":\"https://x/2\"}]}\n```"
	jobs, err := ParseJobs(raw)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "First", jobs[0].Title)
}

func TestMergeJobsKeepsOrderAndDuplicates(t *testing.T) {
	existing := []models.Job{{Title: "A", ApplyLink: "https://x/a"}}
	more := []models.Job{
		{Title: "B", ApplyLink: "https://x/b"},
		{Title: "A again", ApplyLink: "https://x/a"}, // model repeated a job; accepted
	}

	merged := MergeJobs(existing, more)
	require.Len(t, merged, 3)
	assert.Equal(t, "A", merged[0].Title)
	assert.Equal(t, "B", merged[1].Title)
	assert.Equal(t, "A again", merged[2].Title)

	// The inputs are not mutated.
	assert.Len(t, existing, 1)
}
