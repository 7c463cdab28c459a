package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/anesthesia-api/internal/handler"
	"github.com/jwalitptl/anesthesia-api/internal/service/billing"
)

type Handler struct {
	svc billing.ServiceServicer
}

func NewHandler(svc billing.ServiceServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	ownerID, ok := handler.PractitionerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, stats)
}
