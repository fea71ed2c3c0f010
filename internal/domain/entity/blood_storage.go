package entity

import "time"

type BloodStorage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      BloodType `gorm:"type:varchar(2);not null;uniqueIndex:idx_blood_storage_type_rhesus" json:"type"`
	Rhesus    Rhesus    `gorm:"type:varchar(10);not null;uniqueIndex:idx_blood_storage_type_rhesus" json:"rhesus"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (BloodStorage) TableName() string {
	return "blood_storages"
}
