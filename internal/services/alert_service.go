package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/resumatch/resumatch-backend/internal/models"
	"google.golang.org/api/gmail/v1"
)

// AlertService delivers scheduled job alerts: for every user whose profile
// opted in, it runs a grounded search built from the stored profile alone
// (no analysis or session feedback is available offline) and emails the
// results through the Gmail API.
type AlertService struct {
	Profiles *ProfileService
	Jobs     *JobSearchService
	Gmail    *gmail.Service
	Sender   string

	cron *cron.Cron
}

func NewAlertService(profiles *ProfileService, jobs *JobSearchService, gmailSvc *gmail.Service, sender string) *AlertService {
	return &AlertService{
		Profiles: profiles,
		Jobs:     jobs,
		Gmail:    gmailSvc,
		Sender:   sender,
		cron:     cron.New(cron.WithLocation(istLocation())),
	}
}

// Start registers the schedules and launches the cron runner. Daily alerts
// go out at 08:00 IST; weekly ones Monday 08:00 IST.
func (s *AlertService) Start() {
	if s.Gmail == nil {
		log.Println("⚠️ Job alerts disabled (no Gmail client). Check credentials.")
		return
	}

	s.cron.AddFunc("0 8 * * *", func() { s.runAlerts(models.AlertDaily) })
	s.cron.AddFunc("0 8 * * MON", func() { s.runAlerts(models.AlertWeekly) })
	s.cron.Start()
	log.Println("⏰ Job alert scheduler started")
}

func (s *AlertService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *AlertService) runAlerts(freq models.AlertFrequency) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	targets, err := s.Profiles.AlertUsers(ctx, freq)
	if err != nil {
		log.Printf("❌ Alert run (%s) aborted: %v", freq, err)
		return
	}
	if len(targets) == 0 {
		log.Printf("✅ Alert run (%s): no opted-in users", freq)
		return
	}
	log.Printf("📧 Alert run (%s): %d users", freq, len(targets))

	for _, target := range targets {
		jobs, err := s.searchForProfile(ctx, target.Profile)
		if err != nil {
			log.Printf("⚠️ Alert search failed for %s: %v", target.UID, err)
			continue
		}
		if len(jobs) == 0 {
			continue
		}
		if err := s.sendAlertEmail(target.Email, jobs); err != nil {
			log.Printf("⚠️ Alert delivery failed for %s: %v", target.UID, err)
			continue
		}
		log.Printf("✅ Alert sent to %s (%d jobs)", target.UID, len(jobs))
	}
}

// searchForProfile runs the regular grounded search with a synthetic
// analysis built from the stored preferences.
func (s *AlertService) searchForProfile(ctx context.Context, profile models.UserProfile) ([]models.Job, error) {
	role := profile.PreferredTitles
	if role == "" {
		role = profile.CareerGoals
	}
	if role == "" {
		return nil, fmt.Errorf("profile has no preferred titles or career goals")
	}
	return s.Jobs.Search(ctx, SearchParams{
		Analysis: models.Analysis{Role: role},
		Profile:  &profile,
	})
}

func (s *AlertService) sendAlertEmail(to string, jobs []models.Job) error {
	const maxJobs = 5
	if len(jobs) > maxJobs {
		jobs = jobs[:maxJobs]
	}

	var body strings.Builder
	body.WriteString("New job matches from your saved preferences:\n\n")
	for _, j := range jobs {
		fmt.Fprintf(&body, "%s at %s (%s)\n%s\nApply: %s\n\n", j.Title, j.Company, j.Location, j.Description, j.ApplyLink)
	}

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your job matches\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.Sender, to, body.String())

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}
	_, err := retry(2, func() (*gmail.Message, error) {
		return s.Gmail.Users.Messages.Send("me", msg).Do()
	})
	return err
}

func istLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.UTC
	}
	return loc
}
