package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/resumatch/resumatch-backend/internal/models"
)

// ErrNoJobsBlock means the model response carried no fenced json block.
// This is a hard failure: there is nothing to partially recover.
var ErrNoJobsBlock = errors.New("response contains no valid job list")

type jobsEnvelope struct {
	Jobs []models.Job `json:"jobs"`
}

// ParseJobs extracts the first fenced json block from a free-text model
// response and decodes the "jobs" array inside it. A missing or empty array
// inside a valid fence is zero jobs, not an error; a missing fence is
// ErrNoJobsBlock.
func ParseJobs(raw string) ([]models.Job, error) {
	payload, ok := fencedJSON(raw)
	if !ok {
		return nil, ErrNoJobsBlock
	}

	var env jobsEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJobsBlock, err)
	}
	if env.Jobs == nil {
		return []models.Job{}, nil
	}
	return env.Jobs, nil
}

// fencedJSON returns the text between the first ```json fence and the next
// closing fence.
func fencedJSON(raw string) (string, bool) {
	const open = "```json"
	start := strings.Index(raw, open)
	if start == -1 {
		return "", false
	}
	rest := raw[start+len(open):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// MergeJobs appends newly returned jobs to the accumulated list in arrival
// order. Duplicates are not filtered here; display identity stays the apply
// link and a repeated posting is accepted.
func MergeJobs(existing, more []models.Job) []models.Job {
	merged := make([]models.Job, 0, len(existing)+len(more))
	merged = append(merged, existing...)
	return append(merged, more...)
}
