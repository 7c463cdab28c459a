package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/service/billing"
	"github.com/jwalitptl/anesthesia-api/internal/service/report"
)

type fakeBilling struct {
	lastInput  *billing.CreateServiceInput
	lastBill   []byte
	lastFilter *model.ServiceFilter
	views      []*model.ServiceView
}

func (f *fakeBilling) CreateService(_ context.Context, ownerID uuid.UUID, input billing.CreateServiceInput) (*model.Service, error) {
	f.lastInput = &input
	if input.Bill != nil {
		content, err := io.ReadAll(input.Bill.Content)
		if err != nil {
			return nil, err
		}
		f.lastBill = content
	}
	return &model.Service{ID: uuid.New(), DoctorID: ownerID}, nil
}

func (f *fakeBilling) ListServices(_ context.Context, _ uuid.UUID, filter model.ServiceFilter) ([]*model.ServiceView, error) {
	f.lastFilter = &filter
	return f.views, nil
}

func (f *fakeBilling) Stats(context.Context, uuid.UUID) (*model.DashboardStats, error) {
	return &model.DashboardStats{}, nil
}

func newTestRouter(fake *fakeBilling) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("practitionerID", uuid.New())
	})
	h := NewHandler(fake, report.NewExporter(fake))
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func validFields(hospitalID uuid.UUID) map[string]string {
	return map[string]string{
		"hospital_id":     hospitalID.String(),
		"patient_name":    "Jane Doe",
		"patient_number":  "P100",
		"service_date":    "2024-01-10",
		"days_of_service": "1",
		"amount_charged":  "150.00",
		"anesthesia_type": "General",
	}
}

func TestCreateService_Multipart(t *testing.T) {
	fake := &fakeBilling{}
	r := newTestRouter(fake)

	body, contentType := multipartBody(t, validFields(uuid.New()), "bill_file", "bill.pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message string    `json:"message"`
		ID      uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Service created successfully", resp.Message)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	require.NotNil(t, fake.lastInput)
	assert.Equal(t, "P100", fake.lastInput.PatientNumber)
	assert.Equal(t, 150.00, fake.lastInput.AmountCharged)
	require.NotNil(t, fake.lastInput.Bill)
	assert.Equal(t, "bill.pdf", fake.lastInput.Bill.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), fake.lastBill)
}

func TestCreateService_FileOptional(t *testing.T) {
	fake := &fakeBilling{}
	r := newTestRouter(fake)

	body, contentType := multipartBody(t, validFields(uuid.New()), "", "", nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, fake.lastInput)
	assert.Nil(t, fake.lastInput.Bill)
}

func TestCreateService_MissingAmount(t *testing.T) {
	fake := &fakeBilling{}
	r := newTestRouter(fake)

	fields := validFields(uuid.New())
	delete(fields, "amount_charged")
	body, contentType := multipartBody(t, fields, "", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, fake.lastInput)
}

func TestCreateService_MissingDaysOfService(t *testing.T) {
	fake := &fakeBilling{}
	r := newTestRouter(fake)

	fields := validFields(uuid.New())
	delete(fields, "days_of_service")
	body, contentType := multipartBody(t, fields, "", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, fake.lastInput)
}

func TestCreateService_ExplicitZeroValues(t *testing.T) {
	fake := &fakeBilling{}
	r := newTestRouter(fake)

	fields := validFields(uuid.New())
	fields["days_of_service"] = "0"
	fields["amount_charged"] = "0"
	body, contentType := multipartBody(t, fields, "", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, fake.lastInput)
	assert.Equal(t, 0, fake.lastInput.DaysOfService)
	assert.Equal(t, 0.0, fake.lastInput.AmountCharged)
}

func TestCreateService_BadDate(t *testing.T) {
	fake := &fakeBilling{}
	r := newTestRouter(fake)

	fields := validFields(uuid.New())
	fields["service_date"] = "10/01/2024"
	body, contentType := multipartBody(t, fields, "", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, fake.lastInput)
}

func TestListServices_FilterParsing(t *testing.T) {
	hospitalID := uuid.New()
	medication := "Propofol"
	fake := &fakeBilling{views: []*model.ServiceView{{
		ID:             uuid.New(),
		HospitalName:   "City General",
		PatientName:    "Jane Doe",
		PatientNumber:  "P100",
		ServiceDate:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DaysOfService:  1,
		AmountCharged:  150,
		AnesthesiaType: "General",
		MedicationUsed: &medication,
	}}}
	r := newTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/services?hospital_id="+hospitalID.String()+"&anesthesia_type=gen&start_date=2024-01-01&end_date=2024-01-31", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NotNil(t, fake.lastFilter)
	require.NotNil(t, fake.lastFilter.HospitalID)
	assert.Equal(t, hospitalID, *fake.lastFilter.HospitalID)
	assert.Equal(t, "gen", fake.lastFilter.AnesthesiaType)
	require.NotNil(t, fake.lastFilter.StartDate)
	assert.Equal(t, "2024-01-01", fake.lastFilter.StartDate.Format("2006-01-02"))

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "City General", resp[0]["hospital_name"])
	assert.Equal(t, "2024-01-10", resp[0]["service_date"])
}

func TestListServices_BadHospitalID(t *testing.T) {
	r := newTestRouter(&fakeBilling{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services?hospital_id=not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportExcel(t *testing.T) {
	fake := &fakeBilling{views: []*model.ServiceView{{
		ID:             uuid.New(),
		HospitalName:   "City General",
		PatientName:    "Jane Doe",
		PatientNumber:  "P100",
		ServiceDate:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DaysOfService:  1,
		AmountCharged:  150,
		AnesthesiaType: "General",
	}}}
	r := newTestRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export/excel", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "anesthetist_services_")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "City General", rows[1][0])
}
