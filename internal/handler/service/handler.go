package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/anesthesia-api/internal/handler"
	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/service/billing"
	"github.com/jwalitptl/anesthesia-api/internal/service/report"
)

const dateLayout = "2006-01-02"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateLayout, fl.Field().String())
			return err == nil
		})
	}
}

type Handler struct {
	svc      billing.ServiceServicer
	exporter *report.Exporter
}

func NewHandler(svc billing.ServiceServicer, exporter *report.Exporter) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
	}
	r.GET("/export/excel", h.ExportExcel)
}

type createServiceRequest struct {
	HospitalID     string   `form:"hospital_id" binding:"required,uuid"`
	PatientName    string   `form:"patient_name" binding:"required"`
	PatientNumber  string   `form:"patient_number" binding:"required"`
	ServiceDate    string   `form:"service_date" binding:"required,isodate"`
	DaysOfService  *int     `form:"days_of_service" binding:"required,min=0"`
	AmountCharged  *float64 `form:"amount_charged" binding:"required,min=0"`
	AnesthesiaType string   `form:"anesthesia_type" binding:"required"`
	MedicationUsed *string  `form:"medication_used"`
}

type serviceResponse struct {
	ID             uuid.UUID `json:"id"`
	HospitalName   string    `json:"hospital_name"`
	PatientName    string    `json:"patient_name"`
	PatientNumber  string    `json:"patient_number"`
	ServiceDate    string    `json:"service_date"`
	DaysOfService  int       `json:"days_of_service"`
	AmountCharged  float64   `json:"amount_charged"`
	AnesthesiaType string    `json:"anesthesia_type"`
	MedicationUsed *string   `json:"medication_used"`
	BillFilename   *string   `json:"bill_filename"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateService accepts the record fields as a multipart form plus an
// optional bill_file part.
func (h *Handler) CreateService(c *gin.Context) {
	ownerID, ok := handler.PractitionerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req createServiceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	hospitalID, err := uuid.Parse(req.HospitalID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid hospital ID"))
		return
	}

	serviceDate, err := time.Parse(dateLayout, req.ServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service date"))
		return
	}

	input := billing.CreateServiceInput{
		HospitalID:     hospitalID,
		PatientName:    req.PatientName,
		PatientNumber:  req.PatientNumber,
		ServiceDate:    serviceDate,
		DaysOfService:  *req.DaysOfService,
		AmountCharged:  *req.AmountCharged,
		AnesthesiaType: req.AnesthesiaType,
		MedicationUsed: req.MedicationUsed,
	}

	if fileHeader, err := c.FormFile("bill_file"); err == nil && fileHeader.Filename != "" {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to open uploaded file"))
			return
		}
		defer f.Close()
		input.Bill = &billing.Upload{Filename: fileHeader.Filename, Content: f}
	} else if err != nil && !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid file upload"))
		return
	}

	service, err := h.svc.CreateService(c.Request.Context(), ownerID, input)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service created successfully",
		"id":      service.ID,
	})
}

func (h *Handler) ListServices(c *gin.Context) {
	ownerID, ok := handler.PractitionerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	services, err := h.svc.ListServices(c.Request.Context(), ownerID, filter)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	resp := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, serviceResponse{
			ID:             s.ID,
			HospitalName:   s.HospitalName,
			PatientName:    s.PatientName,
			PatientNumber:  s.PatientNumber,
			ServiceDate:    s.ServiceDate.Format(dateLayout),
			DaysOfService:  s.DaysOfService,
			AmountCharged:  s.AmountCharged,
			AnesthesiaType: s.AnesthesiaType,
			MedicationUsed: s.MedicationUsed,
			BillFilename:   s.BillFilename,
			CreatedAt:      s.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// ExportExcel runs the same filtering contract as the listing and returns
// the result as a spreadsheet attachment.
func (h *Handler) ExportExcel(c *gin.Context) {
	ownerID, ok := handler.PractitionerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	data, filename, err := h.exporter.Export(c.Request.Context(), ownerID, filter)
	if err != nil {
		c.JSON(handler.StatusFor(err), handler.NewAppErrorResponse(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, report.ContentType, data)
}

func filterFromQuery(c *gin.Context) (model.ServiceFilter, error) {
	var filter model.ServiceFilter

	if v := c.Query("hospital_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, fmt.Errorf("invalid hospital_id")
		}
		filter.HospitalID = &id
	}
	filter.AnesthesiaType = c.Query("anesthesia_type")
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date")
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date")
		}
		filter.EndDate = &t
	}

	return filter, nil
}
