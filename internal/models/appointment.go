package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	ServiceID uuid.UUID `gorm:"type:uuid" json:"service_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	VehicleModel string `gorm:"size:100;not null" json:"vehicle_model"`
	VehicleColor string `gorm:"size:30" json:"vehicle_color"`
	Plate        string `gorm:"size:7;index:idx_appointments_plate_date" json:"plate"`

	// Data em YYYY-MM-DD e horário como rótulo HH:MM da grade do dia.
	Date string `gorm:"size:10;index:idx_appointments_slot;index:idx_appointments_plate_date" json:"date"`
	Time string `gorm:"size:5;index:idx_appointments_slot" json:"time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
