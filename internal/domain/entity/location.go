package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location is a donation event site. Deleting a location only sets DeletedAt.
type Location struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Latitude  decimal.Decimal `gorm:"type:decimal(9,6);not null" json:"latitude"`
	Longitude decimal.Decimal `gorm:"type:decimal(9,6);not null" json:"longitude"`
	StartTime time.Time       `gorm:"not null;index" json:"startTime"`
	EndTime   time.Time       `gorm:"not null" json:"endTime"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"deletedAt,omitempty"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:LocationID" json:"appointments,omitempty"`
}

func (Location) TableName() string {
	return "locations"
}

// IsDeleted reports whether the location was soft deleted
func (l *Location) IsDeleted() bool {
	return l.DeletedAt.Valid
}
