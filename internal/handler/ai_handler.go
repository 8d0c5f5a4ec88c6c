package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/porikkha/porikkha-backend/internal/ai"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

// AIHandler exposes the AI feature gateway endpoints. Upstream call failures
// surface as 500 with the upstream message; unparseable model output falls
// back to default payloads inside the gateway and still returns 200.
type AIHandler struct {
	gateway *ai.Gateway
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(gateway *ai.Gateway) *AIHandler {
	return &AIHandler{gateway: gateway}
}

// GenerateQuestions godoc
// POST /api/v1/ai/questions/generate
func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	var req struct {
		Subject    string `json:"subject" binding:"required,min=2,max=100"`
		Topic      string `json:"topic" binding:"omitempty,max=200"`
		Difficulty string `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
		Count      int    `json:"count" binding:"omitempty,min=1,max=20"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.gateway.GenerateQuestions(c.Request.Context(), req.Subject, req.Topic, req.Difficulty, req.Count)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AssessQuality godoc
// POST /api/v1/ai/questions/quality
func (h *AIHandler) AssessQuality(c *gin.Context) {
	var req struct {
		Question string `json:"question" binding:"required,min=5,max=2000"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report, err := h.gateway.AssessQuality(c.Request.Context(), req.Question)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quality": report})
}

// CheckPlagiarism godoc
// POST /api/v1/ai/plagiarism
func (h *AIHandler) CheckPlagiarism(c *gin.Context) {
	var req struct {
		Text      string `json:"text" binding:"required,min=10"`
		Reference string `json:"reference" binding:"omitempty"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report, err := h.gateway.CheckPlagiarism(c.Request.Context(), req.Text, req.Reference)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// AnalyzeSentiment godoc
// POST /api/v1/ai/sentiment
func (h *AIHandler) AnalyzeSentiment(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required,min=2"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report, err := h.gateway.AnalyzeSentiment(c.Request.Context(), req.Text)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sentiment": report})
}

// Translate godoc
// POST /api/v1/ai/translate
func (h *AIHandler) Translate(c *gin.Context) {
	var req struct {
		Text       string `json:"text" binding:"required,min=1,max=10000"`
		SourceLang string `json:"source_lang" binding:"omitempty,min=2,max=10"`
		TargetLang string `json:"target_lang" binding:"required,min=2,max=10"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if req.SourceLang == "" {
		req.SourceLang = "bn"
	}

	translation, err := h.gateway.Translate(c.Request.Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"translation": translation})
}

// Synthesize godoc
// POST /api/v1/ai/tts
func (h *AIHandler) Synthesize(c *gin.Context) {
	var req struct {
		Text  string `json:"text" binding:"required,min=1,max=5000"`
		Voice string `json:"voice" binding:"omitempty,max=64"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	descriptor, err := h.gateway.Synthesize(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"speech": descriptor})
}

// Transcribe godoc
// POST /api/v1/ai/stt
func (h *AIHandler) Transcribe(c *gin.Context) {
	var req struct {
		AudioURL string `json:"audio_url" binding:"required,url"`
		Language string `json:"language" binding:"omitempty,min=2,max=10"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	transcript, err := h.gateway.Transcribe(c.Request.Context(), req.AudioURL, req.Language)
	if err != nil {
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrUpstreamAI, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transcript": transcript})
}
