package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/assistant"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
)

// Asker answers free-text questions about the sales data
type Asker interface {
	Ask(ctx context.Context, question string) (assistant.Answer, error)
}

// AssistantHandler serves the sales assistant
type AssistantHandler struct {
	BaseHandler
	asker Asker
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(a Asker) *AssistantHandler {
	return &AssistantHandler{asker: a}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/ask", h.Ask)
}

// Ask answers one question
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if !h.BindJSON(c, &req) {
		return
	}
	answer, err := h.asker.Ask(c.Request.Context(), req.Question)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, answer)
}
