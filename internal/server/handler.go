package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valpere/opustran/internal/gateway"
)

// Generic body for server-side failures; internal detail stays in logs.
const genericErrorMessage = "An unexpected error occurred during translation"

// Translator is the gateway surface the handler depends on.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslateRequest is the POST /translate payload.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// TranslateResponse is the success payload.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// ErrorResponse is the payload for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TranslateHandler turns translation outcomes into HTTP responses. It is
// the only place status codes are chosen.
type TranslateHandler struct {
	translator Translator
	logger     *zap.Logger
}

func NewTranslateHandler(tr Translator, logger *zap.Logger) *TranslateHandler {
	return &TranslateHandler{
		translator: tr,
		logger:     logger,
	}
}

// Translate handles POST /translate.
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No input data provided"})
		return
	}

	translated, err := h.translator.Translate(c.Request.Context(), req.Text, req.TargetLang)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Translation served",
		zap.String("target_lang", req.TargetLang),
		zap.String("request_id", c.GetString("request_id")),
	)
	c.JSON(http.StatusOK, TranslateResponse{TranslatedText: translated})
}

func (h *TranslateHandler) respondError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		// The gateway classifies every failure; anything else is a bug.
		h.logger.Error("Unclassified translation error",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericErrorMessage})
		return
	}

	switch gwErr.Kind {
	case gateway.InvalidInput, gateway.UnsupportedLanguagePair:
		h.logger.Info("Translation rejected",
			zap.String("kind", string(gwErr.Kind)),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: gwErr.Message})
	default:
		h.logger.Error("Translation failed",
			zap.String("kind", string(gwErr.Kind)),
			zap.Error(gwErr),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericErrorMessage})
	}
}
