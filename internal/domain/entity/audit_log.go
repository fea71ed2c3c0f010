package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"userId,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions
const (
	AuditActionUserRegister        = "user.register"
	AuditActionProfileUpdate       = "profile.update"
	AuditActionPasswordChange      = "profile.password_change"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentStatus   = "appointment.status_update"
	AuditActionAdminCreate         = "admin.create"
	AuditActionAdminUserCreate     = "admin.user_create"
	AuditActionAdminUserUpdate     = "admin.user_update"
	AuditActionBloodStorageSet     = "blood_storage.set"
	AuditActionLocationCreate      = "location.create"
	AuditActionLocationUpdate      = "location.update"
	AuditActionLocationDelete      = "location.delete"
	AuditActionSheetLocationImport = "sheet.location_import"
)

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Location{},
		&Appointment{},
		&Questionnaire{},
		&Admin{},
		&BloodStorage{},
		&Conversation{},
		&Message{},
		&AuditLog{},
	}
}
