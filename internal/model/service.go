package model

import (
	"time"

	"github.com/google/uuid"
)

// Service is one billable patient encounter performed by a practitioner at
// a hospital. Records are immutable once created.
type Service struct {
	ID             uuid.UUID `db:"id" json:"id"`
	DoctorID       uuid.UUID `db:"doctor_id" json:"doctor_id"`
	HospitalID     uuid.UUID `db:"hospital_id" json:"hospital_id"`
	PatientName    string    `db:"patient_name" json:"patient_name"`
	PatientNumber  string    `db:"patient_number" json:"patient_number"`
	ServiceDate    time.Time `db:"service_date" json:"service_date"`
	DaysOfService  int       `db:"days_of_service" json:"days_of_service"`
	AmountCharged  float64   `db:"amount_charged" json:"amount_charged"`
	AnesthesiaType string    `db:"anesthesia_type" json:"anesthesia_type"`
	MedicationUsed *string   `db:"medication_used" json:"medication_used,omitempty"`
	BillFilename   *string   `db:"bill_filename" json:"bill_filename,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ServiceView is a Service with the owning hospital's display name joined
// in at read time. A dangling hospital reference shows "Unknown" instead of
// failing the whole query.
type ServiceView struct {
	ID             uuid.UUID `db:"id" json:"id"`
	HospitalName   string    `db:"hospital_name" json:"hospital_name"`
	PatientName    string    `db:"patient_name" json:"patient_name"`
	PatientNumber  string    `db:"patient_number" json:"patient_number"`
	ServiceDate    time.Time `db:"service_date" json:"service_date"`
	DaysOfService  int       `db:"days_of_service" json:"days_of_service"`
	AmountCharged  float64   `db:"amount_charged" json:"amount_charged"`
	AnesthesiaType string    `db:"anesthesia_type" json:"anesthesia_type"`
	MedicationUsed *string   `db:"medication_used" json:"medication_used,omitempty"`
	BillFilename   *string   `db:"bill_filename" json:"bill_filename,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ServiceFilter narrows a practitioner's service listing. Nil/empty fields
// impose no constraint; supplied fields combine with AND. Date bounds are
// inclusive.
type ServiceFilter struct {
	HospitalID     *uuid.UUID
	AnesthesiaType string
	StartDate      *time.Time
	EndDate        *time.Time
}

// DashboardStats are aggregates over the full unfiltered set of the
// owner's services, computed from a single snapshot.
type DashboardStats struct {
	TotalPatients  int     `db:"total_patients" json:"total_patients"`
	TotalRevenue   float64 `db:"total_revenue" json:"total_revenue"`
	TotalServices  int     `db:"total_services" json:"total_services"`
	TotalHospitals int     `db:"total_hospitals" json:"total_hospitals"`
}
