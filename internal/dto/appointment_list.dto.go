package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/lavarapido/wash-scheduler/internal/models"
)

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type AppointmentListDTO struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Status       string    `json:"status"`
	VehicleModel string    `json:"vehicle_model"`
	VehicleColor string    `json:"vehicle_color,omitempty"`
	Plate        string    `json:"plate"`
	Notes        string    `json:"notes,omitempty"`

	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice float64   `json:"service_price"`

	// Preenchidos apenas na listagem de admin.
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAppointmentListDTO(ap models.Appointment, isAdmin bool) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           ap.ID,
		Date:         ap.Date,
		Time:         ap.Time,
		Status:       ap.Status,
		VehicleModel: ap.VehicleModel,
		VehicleColor: ap.VehicleColor,
		Plate:        ap.Plate,
		Notes:        ap.Notes,
		ServiceID:    ap.ServiceID,
		ServiceName:  ap.Service.Name,
		ServicePrice: ap.Service.Price,
		CreatedAt:    ap.CreatedAt,
		UpdatedAt:    ap.UpdatedAt,
	}

	if isAdmin {
		out.UserName = ap.User.Name
		out.UserEmail = ap.User.Email
	}

	return out
}
