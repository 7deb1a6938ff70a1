package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/resumatch/resumatch-backend/internal/auth"
	"github.com/resumatch/resumatch-backend/internal/dtos"
	"github.com/resumatch/resumatch-backend/internal/extract"
	"github.com/resumatch/resumatch-backend/internal/services"
)

// ResumeHandler covers the input half of the flow: file-to-text extraction
// and the structured analysis call.
type ResumeHandler struct {
	Analysis *services.AnalysisService
}

func NewResumeHandler(analysis *services.AnalysisService) *ResumeHandler {
	return &ResumeHandler{Analysis: analysis}
}

const maxResumeBytes = 10 << 20

// Extract is the POST /resume/extract endpoint: multipart upload in,
// extracted text (plus preview for markdown) out.
func (h *ResumeHandler) Extract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload: " + err.Error()})
		return
	}
	if fileHeader.Size > maxResumeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	if !extract.SupportedExt(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file format. Use txt, md, pdf or docx."})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload: " + err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload: " + err.Error()})
		return
	}

	res, err := extract.Extract(data, ext)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, extract.ErrUnsupportedFormat) && !errors.Is(err, extract.ErrNoText) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "Extraction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.ExtractResponse{Text: res.Text, PreviewHTML: res.PreviewHTML})
}

// Analyze is the POST /resume/analyze endpoint. Anonymous users get an
// analysis too; only persistence needs an identity.
func (h *ResumeHandler) Analyze(c *gin.Context) {
	var req dtos.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume text is empty"})
		return
	}

	uid := ""
	if user := auth.CurrentUser(c); user != nil {
		uid = user.UID
	}

	analysis, err := h.Analysis.Analyze(c.Request.Context(), uid, req.ResumeText)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
