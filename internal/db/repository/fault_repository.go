package repository

import (
	"github.com/gridwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// FaultRepository defines operations for short-circuit events
type FaultRepository interface {
	Repository
	Create(fault *models.FaultEvent) error
	List(offset, limit int) ([]models.FaultEvent, int64, error)
	Count() (int64, error)
}

// faultRepository implements FaultRepository
type faultRepository struct {
	BaseRepository
}

// NewFaultRepository creates a new fault repository
func NewFaultRepository(db *gorm.DB) FaultRepository {
	return &faultRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create appends a new fault event row
func (r *faultRepository) Create(fault *models.FaultEvent) error {
	err := r.GetDB().Create(fault).Error
	return r.handleError(err)
}

// List retrieves a window of fault events ordered most-recent first.
// The sequence id is an explicit secondary sort key so pages stay
// deterministic when event timestamps collide.
func (r *faultRepository) List(offset, limit int) ([]models.FaultEvent, int64, error) {
	var faults []models.FaultEvent
	var total int64

	// Get total count
	if err := r.GetDB().Model(&models.FaultEvent{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleError(err)
	}

	// Get paginated fault events
	err := r.GetDB().
		Order("timestamp desc").
		Order("id desc").
		Offset(offset).Limit(limit).
		Find(&faults).Error
	if err != nil {
		return nil, 0, r.handleError(err)
	}

	return faults, total, nil
}

// Count returns the total number of fault events
func (r *faultRepository) Count() (int64, error) {
	var total int64
	if err := r.GetDB().Model(&models.FaultEvent{}).Count(&total).Error; err != nil {
		return 0, r.handleError(err)
	}
	return total, nil
}
