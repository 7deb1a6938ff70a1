package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/resumatch/resumatch-backend/internal/models"
	"google.golang.org/genai"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// analysisSchema is the fixed structured-output contract for resume
// analysis. The response decodes directly into models.Analysis.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "Short professional summary of the resume.",
		},
		"skills": {
			Type:        genai.TypeArray,
			Description: "Skills found in the resume, most prominent first.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"skillName":  {Type: genai.TypeString},
					"prevalence": {Type: genai.TypeInteger, Description: "How prominent the skill is, 1-5."},
				},
				Required: []string{"skillName", "prevalence"},
			},
		},
		"role": {
			Type:        genai.TypeString,
			Description: "The single job role this resume is best suited for.",
		},
		"atsScore": {
			Type:        genai.TypeInteger,
			Description: "Estimated ATS compatibility score, 0-100.",
		},
		"experienceLevel": {
			Type:        genai.TypeString,
			Description: "e.g. Entry-level, Mid-level, Senior.",
		},
		"improvementSuggestions": {
			Type:        genai.TypeString,
			Description: "2-3 bullet-style points on how to improve the resume.",
		},
	},
	Required: []string{"summary", "skills", "role", "atsScore", "experienceLevel", "improvementSuggestions"},
}

const analysisPrompt = `You are an expert career coach and ATS auditor. Analyze the resume below.

Base everything only on the provided text; do not invent experience the candidate does not mention.

Resume:
%s`

type AnalysisService struct {
	LLM Completer
	DB  *gorm.DB
}

func NewAnalysisService(llm Completer, db *gorm.DB) *AnalysisService {
	return &AnalysisService{LLM: llm, DB: db}
}

// Analyze runs one structured analysis of resumeText. The caller must have
// rejected empty/whitespace-only text already; this double-checks and fails
// fast rather than burning a model call. For signed-in users (uid != "")
// the result is also persisted; persistence failure does not fail the
// analysis.
func (s *AnalysisService) Analyze(ctx context.Context, uid, resumeText string) (models.Analysis, error) {
	if strings.TrimSpace(resumeText) == "" {
		return models.Analysis{}, fmt.Errorf("analysis failed: empty resume text")
	}

	raw, err := s.LLM.GenerateStructured(ctx, fmt.Sprintf(analysisPrompt, resumeText), analysisSchema)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("analysis failed: %w", err)
	}

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("analysis failed: invalid model output: %w", err)
	}

	if uid != "" && s.DB != nil {
		s.persist(uid, raw)
	}
	return analysis, nil
}

func (s *AnalysisService) persist(uid, payload string) {
	record := models.AnalysisRecord{
		ID:      uuid.New(),
		UID:     uid,
		Payload: datatypes.JSON(payload),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		log.Printf("⚠️ Failed to persist analysis for %s: %v", uid, err)
	}
}
