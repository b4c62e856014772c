package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alarm status values reported by energy devices
const (
	AlarmStatusNormal   = "normal"
	AlarmStatusWarning  = "warning"
	AlarmStatusCritical = "critical"
	AlarmStatusUnknown  = "unknown"
)

// Device represents a registered energy-monitoring unit. Devices are created
// lazily on the first reading that references an unseen serial number and are
// never deleted by the ingestion path.
type Device struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SerialNumber    string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"serial_number"`
	FirmwareVersion string    `gorm:"type:varchar(50)" json:"firmware_version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Readings []Reading `gorm:"foreignKey:DeviceID" json:"energy_readings,omitempty"`
}

// TableName overrides the table name for Device
func (Device) TableName() string {
	return "energy_devices"
}

// BeforeCreate hook assigns a fresh identifier before insert
func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Reading represents one energy-measurement sample tied to a Device. The
// structured sub-records are stored as opaque blobs; the raw payload is
// always retained even when individual sub-records failed to parse.
type Reading struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID            uuid.UUID `gorm:"type:uuid;not null;index" json:"device_id"`
	AlarmStatus         string    `gorm:"type:varchar(50);not null" json:"alarm_status"`
	SwitchStatus        JSON      `gorm:"not null" json:"switch_status"`
	CurrentMeasurements JSON      `gorm:"not null" json:"current_measurements"`
	PowerMeasurements   JSON      `gorm:"not null" json:"power_measurements"`
	VoltageMeasurements JSON      `gorm:"not null" json:"voltage_measurements"`
	RawData             JSON      `gorm:"not null" json:"-"`
	CreatedAt           time.Time `json:"created_at"`

	// Relationships
	Device *Device `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
}

// TableName overrides the table name for Reading
func (Reading) TableName() string {
	return "energy_readings"
}

// BeforeCreate hook assigns a fresh identifier before insert
func (r *Reading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
