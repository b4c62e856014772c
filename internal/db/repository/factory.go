package repository

import "gorm.io/gorm"

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db            *gorm.DB
	deviceRepo    DeviceRepository
	readingRepo   ReadingRepository
	heartbeatRepo HeartbeatRepository
	faultRepo     FaultRepository
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{
		db: db,
	}
}

// Device returns the device repository
func (f *RepositoryFactory) Device() DeviceRepository {
	if f.deviceRepo == nil {
		f.deviceRepo = NewDeviceRepository(f.db)
	}
	return f.deviceRepo
}

// Reading returns the reading repository
func (f *RepositoryFactory) Reading() ReadingRepository {
	if f.readingRepo == nil {
		f.readingRepo = NewReadingRepository(f.db)
	}
	return f.readingRepo
}

// Heartbeat returns the heartbeat repository
func (f *RepositoryFactory) Heartbeat() HeartbeatRepository {
	if f.heartbeatRepo == nil {
		f.heartbeatRepo = NewHeartbeatRepository(f.db)
	}
	return f.heartbeatRepo
}

// Fault returns the fault repository
func (f *RepositoryFactory) Fault() FaultRepository {
	if f.faultRepo == nil {
		f.faultRepo = NewFaultRepository(f.db)
	}
	return f.faultRepo
}
