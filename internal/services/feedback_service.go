package services

import (
	"sync"

	"github.com/resumatch/resumatch-backend/internal/models"
)

// FeedbackService holds per-session like/dislike state. It is deliberately
// in-memory only: feedback is a transient signal that resets when the
// session (or the server) goes away. Keys are the uid for signed-in users
// and the client-chosen session id otherwise.
type FeedbackService struct {
	mu       sync.Mutex
	sessions map[string]models.Feedback
}

func NewFeedbackService() *FeedbackService {
	return &FeedbackService{sessions: make(map[string]models.Feedback)}
}

// Toggle applies a reaction for the session and returns a copy of the
// session's feedback after the toggle.
func (s *FeedbackService) Toggle(key, applyLink string, r models.Reaction) models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()

	fb, ok := s.sessions[key]
	if !ok {
		fb = models.Feedback{}
		s.sessions[key] = fb
	}
	fb.Toggle(applyLink, r)
	return copyFeedback(fb)
}

// Get returns a copy of the session's feedback, empty if none recorded.
func (s *FeedbackService) Get(key string) models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFeedback(s.sessions[key])
}

// Reset drops all feedback for the session.
func (s *FeedbackService) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

func copyFeedback(fb models.Feedback) models.Feedback {
	out := models.Feedback{}
	for k, v := range fb {
		out[k] = v
	}
	return out
}
