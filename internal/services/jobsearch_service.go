package services

import (
	"context"
	"fmt"

	"github.com/resumatch/resumatch-backend/internal/models"
	"github.com/resumatch/resumatch-backend/internal/search"
)

// JobSearchService drives the grounded job search: derive the liked and
// disliked signal sets, build the prompt, make one grounded call, parse the
// fenced payload out of the answer. The model call is never retried; a
// malformed answer surfaces to the caller as-is.
type JobSearchService struct {
	LLM Completer
}

func NewJobSearchService(llm Completer) *JobSearchService {
	return &JobSearchService{LLM: llm}
}

type SearchParams struct {
	Analysis         models.Analysis
	ExperienceFilter string
	CompaniesFilter  string

	Profile  *models.UserProfile
	Saved    models.SavedJobs
	Feedback models.Feedback

	FindMore bool
	Current  []models.Job
}

// Search returns the accumulated job list: the fresh results on a first
// search, or Current plus the new batch on find-more.
func (s *JobSearchService) Search(ctx context.Context, p SearchParams) ([]models.Job, error) {
	liked, disliked := search.DeriveSignals(p.Feedback, p.Saved, p.Current)

	prompt := search.BuildJobSearchPrompt(search.PromptParams{
		Analysis:         p.Analysis,
		ExperienceFilter: p.ExperienceFilter,
		CompaniesFilter:  p.CompaniesFilter,
		Profile:          p.Profile,
		Liked:            liked,
		Disliked:         disliked,
		FindMore:         p.FindMore,
		Current:          p.Current,
	})

	raw, err := s.LLM.GenerateGrounded(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("job search failed: %w", err)
	}

	jobs, err := search.ParseJobs(raw)
	if err != nil {
		return nil, err
	}

	if p.FindMore {
		return search.MergeJobs(p.Current, jobs), nil
	}
	return jobs, nil
}
