package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"issuewiz.app/advisor/internal/advisor"
	"issuewiz.app/advisor/internal/http/dto"
)

type Analyzer interface {
	Analyze(ctx context.Context, req advisor.AnalysisRequest) (advisor.Analysis, error)
}

type Suggester interface {
	Suggest(ctx context.Context, req advisor.SuggestionRequest) (advisor.Suggestions, error)
}

type Mentor interface {
	Reply(ctx context.Context, req advisor.MentorRequest) (string, error)
}

// flowMessages are the caller-facing error texts of one route.
type flowMessages struct {
	empty    string
	rejected string
	internal string
}

var (
	analysisMessages = flowMessages{
		empty:    "Failed to generate analysis",
		rejected: "Issue analysis process failed",
		internal: "Internal Server Error",
	}
	suggestionMessages = flowMessages{
		empty:    "Failed to generate recommendations",
		rejected: "Issue recommendation process failed",
		internal: "Internal Server Error",
	}
	mentorMessages = flowMessages{
		empty:    "Failed to generate response",
		rejected: "Failed to process chat follow-up",
		internal: "Failed to process chat follow-up",
	}
)

type AdvisorHandler struct {
	analyzer  Analyzer
	suggester Suggester
	mentor    Mentor
}

func NewAdvisorHandler(analyzer Analyzer, suggester Suggester, mentor Mentor) *AdvisorHandler {
	return &AdvisorHandler{
		analyzer:  analyzer,
		suggester: suggester,
		mentor:    mentor,
	}
}

func (h *AdvisorHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AnalyzeIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err), analysisMessages)
		return
	}

	analysis, err := h.analyzer.Analyze(ctx, req.ToAnalysisRequest())
	if err != nil {
		respondError(c, err, analysisMessages)
		return
	}

	c.JSON(http.StatusOK, dto.AnalyzeIssueResponse{Reply: analysis})
}

func (h *AdvisorHandler) Suggest(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SuggestIssuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err), suggestionMessages)
		return
	}

	suggestions, err := h.suggester.Suggest(ctx, req.ToSuggestionRequest())
	if err != nil {
		respondError(c, err, suggestionMessages)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestIssuesResponse{Reply: suggestions})
}

func (h *AdvisorHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChatFollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err), mentorMessages)
		return
	}

	reply, err := h.mentor.Reply(ctx, req.ToMentorRequest())
	if err != nil {
		respondError(c, err, mentorMessages)
		return
	}

	c.JSON(http.StatusOK, dto.ChatFollowupResponse{Reply: reply})
}

// bindError turns a request decoding failure into an InvalidInputError.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		reason := "has the wrong type"
		if typeErr.Type != nil && strings.HasPrefix(typeErr.Type.String(), "[]") {
			reason = "is not available or not an array"
		}
		return &advisor.InvalidInputError{Field: field, Reason: reason}
	}
	return &advisor.InvalidInputError{Field: "request body", Reason: "is not valid JSON"}
}

func respondError(c *gin.Context, err error, msgs flowMessages) {
	ctx := c.Request.Context()

	var (
		invalid   *advisor.InvalidInputError
		cfgErr    *advisor.ConfigurationError
		empty     *advisor.EmptyReplyError
		parseErr  *advisor.ResponseParseError
		schemaErr *advisor.SchemaViolationError
	)

	switch {
	case errors.As(err, &invalid):
		slog.WarnContext(ctx, "invalid request", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: invalid.Error()})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: cfgErr.Error()})
	case errors.As(err, &empty):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgs.empty})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: msgs.rejected,
			Details: dto.ParseFailureDetails{
				Message:   parseErr.Err.Error(),
				Sanitized: parseErr.Sanitized,
			},
		})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgs.rejected})
	default:
		slog.ErrorContext(ctx, "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgs.internal})
	}
}
