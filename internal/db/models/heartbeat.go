package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Heartbeat is a standalone liveness record. The serial number is kept as a
// plain string, not a foreign key into the device registry.
type Heartbeat struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceName    string    `gorm:"type:varchar(100);not null" json:"device_name"`
	MACAddress    string    `gorm:"type:varchar(17);not null;column:mac_address" json:"mac_address"`
	SerialNumber  string    `gorm:"type:varchar(100);not null" json:"serial_number"`
	StateDuration int       `gorm:"not null" json:"state_duration"`
	Timestamp     time.Time `json:"timestamp"`
}

// TableName overrides the table name for Heartbeat
func (Heartbeat) TableName() string {
	return "device_alive"
}

// BeforeCreate hook assigns a fresh identifier before insert
func (h *Heartbeat) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
