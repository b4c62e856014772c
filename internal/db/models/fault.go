package models

import (
	"time"
)

// FaultEvent is a recorded short-circuit occurrence. Unlike the other
// entities it keeps an auto-incrementing integer identifier: insertion order
// is the stable tiebreaker for pagination when event timestamps collide.
//
// The previous-* fields describe the optional prior fault state. They are
// all null unless the report carried a previous sub-object.
type FaultEvent struct {
	ID                      uint       `gorm:"primarykey" json:"id"`
	ControlMAC              string     `gorm:"type:varchar(17);column:control_mac" json:"control_mac"`
	WifiMAC                 string     `gorm:"type:varchar(17);column:wifi_mac" json:"wifi_mac"`
	Timestamp               time.Time  `gorm:"index" json:"timestamp"`
	CurrentActive           bool       `json:"current_active"`
	CurrentDurationSeconds  int        `json:"current_duration_seconds"`
	PreviousActive          *bool      `json:"previous_active"`
	PreviousTimestamp       *time.Time `json:"previous_timestamp"`
	PreviousDurationSeconds *int       `json:"previous_duration_seconds"`
}

// TableName overrides the table name for FaultEvent
func (FaultEvent) TableName() string {
	return "short_circuits"
}
