package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/anesthesia-api/internal/handler"
	hospitalService "github.com/jwalitptl/anesthesia-api/internal/service/hospital"
)

type Handler struct {
	svc hospitalService.HospitalServicer
}

func NewHandler(svc hospitalService.HospitalServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.GET("", h.ListHospitals)
		hospitals.POST("", h.CreateHospital)
	}
}

type createHospitalRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) CreateHospital(c *gin.Context) {
	var req createHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	hospital, err := h.svc.CreateHospital(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.JSON(http.StatusCreated, hospital)
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.svc.ListHospitals(c.Request.Context())
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, hospitals)
}
