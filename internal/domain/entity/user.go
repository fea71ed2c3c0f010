package entity

import (
	"time"
)

// User is a registered donor. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	NIK            string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"nik"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Password       string     `gorm:"type:text;not null" json:"-"`
	ProfilePicture *string    `gorm:"type:text" json:"profilePicture"`
	BirthPlace     string     `gorm:"type:varchar(255)" json:"birthPlace"`
	BirthDate      time.Time  `gorm:"type:date;not null" json:"birthDate"`
	Gender         *Gender    `gorm:"type:varchar(10)" json:"gender"`
	Job            string     `gorm:"type:varchar(255)" json:"job"`
	PhoneNumber    string     `gorm:"type:varchar(20)" json:"phoneNumber"`
	WeightKg       float64    `gorm:"not null;default:0" json:"weightKg"`
	HeightCm       float64    `gorm:"not null;default:0" json:"heightCm"`
	BloodType      *BloodType `gorm:"type:varchar(2)" json:"bloodType"`
	Rhesus         *Rhesus    `gorm:"type:varchar(10)" json:"rhesus"`
	Address        string     `gorm:"type:text" json:"address"`
	NoRT           int        `gorm:"column:no_rt;not null;default:0" json:"noRt"`
	NoRW           int        `gorm:"column:no_rw;not null;default:0" json:"noRw"`
	Village        string     `gorm:"type:varchar(255)" json:"village"`
	District       string     `gorm:"type:varchar(255)" json:"district"`
	City           string     `gorm:"type:varchar(255)" json:"city"`
	Province       string     `gorm:"type:varchar(255)" json:"province"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:UserID" json:"appointments,omitempty"`
}

func (User) TableName() string {
	return "users"
}
