package repository

import (
	"github.com/gridwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// HeartbeatRepository defines operations for device liveness records
type HeartbeatRepository interface {
	Repository
	Create(heartbeat *models.Heartbeat) error
}

// heartbeatRepository implements HeartbeatRepository
type heartbeatRepository struct {
	BaseRepository
}

// NewHeartbeatRepository creates a new heartbeat repository
func NewHeartbeatRepository(db *gorm.DB) HeartbeatRepository {
	return &heartbeatRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create appends a new heartbeat row
func (r *heartbeatRepository) Create(heartbeat *models.Heartbeat) error {
	err := r.GetDB().Create(heartbeat).Error
	return r.handleError(err)
}
