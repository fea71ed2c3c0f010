package entity

import (
	"strings"
	"time"
)

// AppointmentStatus represents the attendance state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusAttended  AppointmentStatus = "ATTENDED"
	AppointmentStatusMissed    AppointmentStatus = "MISSED"
)

// ParseAppointmentStatus accepts the exact status names only.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	switch s := AppointmentStatus(strings.TrimSpace(raw)); s {
	case AppointmentStatusScheduled, AppointmentStatusAttended, AppointmentStatusMissed:
		return s, nil
	default:
		return "", ErrInvalidAppointmentStatus
	}
}

// Appointment is a user's registration for a donation location.
// Status is the only field that changes after creation.
type Appointment struct {
	ID         uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint              `gorm:"not null;index" json:"userId"`
	LocationID uint              `gorm:"not null;index" json:"locationId"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	PdfURL     *string           `gorm:"column:pdf_url;type:text" json:"pdfUrl"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Location      *Location       `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Questionnaire []Questionnaire `gorm:"foreignKey:AppointmentID" json:"questionnaire,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Questionnaire is one answered screening question of an appointment
type Questionnaire struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint      `gorm:"not null;index" json:"appointmentId"`
	Number        int       `gorm:"not null" json:"number"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	Answer        string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}
