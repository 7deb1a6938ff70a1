// Package search holds the job-search core: deterministic prompt
// construction for the grounded model call, and extraction of the job list
// the model embeds in its free-text answer.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/resumatch/resumatch-backend/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PromptParams carries everything the prompt depends on. Building the
// prompt has no side effects; equal params yield an identical string.
type PromptParams struct {
	Analysis models.Analysis

	// Free-text filters entered alongside the search.
	ExperienceFilter string
	CompaniesFilter  string

	// Profile is nil for anonymous searches. A profile with no searchable
	// fields set is treated the same as nil.
	Profile *models.UserProfile

	Liked    []models.Job
	Disliked []models.Job

	// FindMore widens an existing result set: Current is embedded verbatim
	// so the model can avoid repeating it.
	FindMore bool
	Current  []models.Job
}

// inr formats amounts with Indian digit grouping (₹1,50,000).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// DeriveSignals builds the liked/disliked sets that bias the search.
// Liked is feedback-likes overlaid with every saved job, deduplicated by
// apply link. A saved job re-enters liked even if it was separately
// disliked; dislike and save are independent signals and the saved overlay
// wins. Disliked is simply the feedback-dislikes.
func DeriveSignals(fb models.Feedback, saved models.SavedJobs, known []models.Job) (liked, disliked []models.Job) {
	likes := fb.Links(models.ReactionLike)
	dislikes := fb.Links(models.ReactionDislike)

	seen := make(map[string]bool)
	for _, j := range known {
		if likes[j.ApplyLink] && !seen[j.ApplyLink] {
			seen[j.ApplyLink] = true
			liked = append(liked, j)
		}
	}
	for _, j := range saved {
		if !seen[j.ApplyLink] {
			seen[j.ApplyLink] = true
			liked = append(liked, j)
		}
	}
	for _, j := range known {
		if dislikes[j.ApplyLink] {
			disliked = append(disliked, j)
		}
	}
	return liked, disliked
}

// BuildJobSearchPrompt renders the single instruction string for the
// grounded completion. The output-format paragraph at the end is a fixed
// contract: ParseJobs depends on it exactly.
func BuildJobSearchPrompt(p PromptParams) string {
	var b strings.Builder

	b.WriteString("You are an expert job-search assistant. Use web search to find real, currently open job postings in India for the candidate described below.\n\n")

	b.WriteString("Candidate analysis:\n")
	fmt.Fprintf(&b, "- Ideal role: %s\n", p.Analysis.Role)
	if p.Analysis.ExperienceLevel != "" {
		fmt.Fprintf(&b, "- Experience level: %s\n", p.Analysis.ExperienceLevel)
	}
	if len(p.Analysis.Skills) > 0 {
		names := make([]string, 0, len(p.Analysis.Skills))
		for _, s := range p.Analysis.Skills {
			names = append(names, fmt.Sprintf("%s (%d/5)", s.SkillName, s.Prevalence))
		}
		fmt.Fprintf(&b, "- Key skills: %s\n", strings.Join(names, ", "))
	}
	if p.Analysis.Summary != "" {
		fmt.Fprintf(&b, "- Resume summary: %s\n", p.Analysis.Summary)
	}
	b.WriteString("\n")

	if p.ExperienceFilter != "" {
		fmt.Fprintf(&b, "Only consider roles matching this experience level: %s.\n", p.ExperienceFilter)
	}
	if p.CompaniesFilter != "" {
		fmt.Fprintf(&b, "Weight results heavily toward these preferred companies, but do not search them exclusively: %s.\n", p.CompaniesFilter)
	}

	if p.Profile != nil && !p.Profile.IsEmpty() {
		b.WriteString("\nCandidate preferences from their profile:\n")
		if p.Profile.PreferredTitles != "" {
			fmt.Fprintf(&b, "- Preferred job titles: %s\n", p.Profile.PreferredTitles)
		}
		if sal := formatSalaryRange(p.Profile.MinSalary, p.Profile.MaxSalary); sal != "" {
			fmt.Fprintf(&b, "- Expected salary: %s\n", sal)
		}
		if p.Profile.CareerGoals != "" {
			fmt.Fprintf(&b, "- Career goals: %s\n", p.Profile.CareerGoals)
		}
		if p.Profile.LocationPreference != "" {
			fmt.Fprintf(&b, "- Location preference: %s\n", p.Profile.LocationPreference)
		}
	}

	if len(p.Liked) > 0 {
		b.WriteString("\nThe candidate responded positively to these jobs; prefer similar roles and companies:\n")
		writeJobLines(&b, p.Liked)
	}
	if len(p.Disliked) > 0 {
		b.WriteString("\nThe candidate disliked these jobs; avoid similar ones:\n")
		writeJobLines(&b, p.Disliked)
	}

	b.WriteString("\n")
	if p.FindMore {
		b.WriteString("Find more matching jobs. Do NOT return any job already shown below, and exclude postings with these titles at these companies:\n")
		writeJobLines(&b, p.Current)
	} else {
		b.WriteString("Find exactly 10 matching jobs.\n")
	}

	b.WriteString("\nPrioritize postings that fit the candidate's experience level and ideal role. Every job must include a concrete application URL a candidate can open today.\n")

	b.WriteString("\nRespond with exactly one fenced code block labeled json, containing a single JSON object with one key \"jobs\": an array of objects with keys " +
		"title, company, location, description (1-2 sentences), applyLink, sourceUrl, datePosted (ISO date string, e.g. 2025-08-25). " +
		"Do not put any other JSON outside that block.\n")

	return b.String()
}

func writeJobLines(b *strings.Builder, jobs []models.Job) {
	for _, j := range jobs {
		fmt.Fprintf(b, "- %s at %s\n", j.Title, j.Company)
	}
}

// formatSalaryRange renders present bounds as locale-formatted INR figures
// joined with " - ". An absent bound is omitted, never rendered as zero.
func formatSalaryRange(min, max string) string {
	parts := make([]string, 0, 2)
	if f := formatINR(min); f != "" {
		parts = append(parts, f)
	}
	if f := formatINR(max); f != "" {
		parts = append(parts, f)
	}
	return strings.Join(parts, " - ")
}

func formatINR(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Free-text salary, pass through as entered.
		return raw
	}
	return inr.Sprintf("₹%d", n)
}
