package repository

import (
	"github.com/gridwatch/backend/internal/db/models"
	"gorm.io/gorm"
)

// ReadingRepository defines operations for energy readings
type ReadingRepository interface {
	Repository
	Create(reading *models.Reading) error
}

// readingRepository implements ReadingRepository
type readingRepository struct {
	BaseRepository
}

// NewReadingRepository creates a new reading repository
func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create appends a new reading. Readings are append-only; nothing in the
// ingestion path updates or deletes them.
func (r *readingRepository) Create(reading *models.Reading) error {
	err := r.GetDB().Create(reading).Error
	return r.handleError(err)
}
