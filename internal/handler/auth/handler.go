package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/anesthesia-api/internal/handler"
	"github.com/jwalitptl/anesthesia-api/internal/model"
	authService "github.com/jwalitptl/anesthesia-api/internal/service/auth"
	"github.com/jwalitptl/anesthesia-api/pkg/auth"
)

type Handler struct {
	svc *authService.Service
}

func NewHandler(svc *authService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

// Login accepts the credentials as form fields and returns a bearer
// token.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) Me(c *gin.Context) {
	id, ok := handler.PractitionerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	practitioner, err := h.svc.GetPractitioner(c.Request.Context(), &auth.Claims{PractitionerID: id})
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        practitioner.ID,
		"email":     practitioner.Email,
		"full_name": practitioner.FullName,
	})
}
