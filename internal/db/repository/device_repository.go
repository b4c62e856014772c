package repository

import (
	"errors"

	"github.com/gridwatch/backend/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository defines operations for the device registry
type DeviceRepository interface {
	Repository
	GetBySerialNumber(serialNumber string) (*models.Device, error)
	EnsureBySerial(serialNumber, firmwareVersion string) (*models.Device, error)
	ListWithReadings() ([]models.Device, error)
}

// deviceRepository implements DeviceRepository
type deviceRepository struct {
	BaseRepository
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetBySerialNumber retrieves a device by exact serial-number match
func (r *deviceRepository) GetBySerialNumber(serialNumber string) (*models.Device, error) {
	var device models.Device
	err := r.GetDB().Where("serial_number = ?", serialNumber).First(&device).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return &device, nil
}

// EnsureBySerial returns the device registered under the serial number,
// creating it if no registration exists yet. An existing device is returned
// unchanged; in particular its firmware version is not updated.
//
// Concurrent registrations of the same unseen serial number are serialized
// by the unique index: the insert runs with ON CONFLICT DO NOTHING and the
// losing side falls back to a lookup.
func (r *deviceRepository) EnsureBySerial(serialNumber, firmwareVersion string) (*models.Device, error) {
	var device models.Device
	err := r.GetDB().Where("serial_number = ?", serialNumber).First(&device).Error
	if err == nil {
		return &device, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.handleError(err)
	}

	device = models.Device{
		SerialNumber:    serialNumber,
		FirmwareVersion: firmwareVersion,
	}

	result := r.GetDB().
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "serial_number"}},
			DoNothing: true,
		}).
		Create(&device)
	if result.Error != nil {
		return nil, r.handleError(result.Error)
	}

	// Zero rows affected means another transaction won the insert race; the
	// id generated above never reached the table, so re-read the winner.
	if result.RowsAffected == 0 {
		if err := r.GetDB().Where("serial_number = ?", serialNumber).First(&device).Error; err != nil {
			return nil, r.handleError(err)
		}
	}

	return &device, nil
}

// ListWithReadings retrieves every device with its readings eager-loaded in
// the same call. Full scan, no pagination: this backs a diagnostic endpoint
// and does not scale beyond a small fleet.
func (r *deviceRepository) ListWithReadings() ([]models.Device, error) {
	var devices []models.Device
	err := r.GetDB().Preload("Readings").Find(&devices).Error
	if err != nil {
		return nil, r.handleError(err)
	}
	return devices, nil
}
