package repository

import (
	"time"

	"github.com/sciops/workorder-gin/internal/model"
	"gorm.io/gorm"
)

// WorkOrderRepository is the persistence collaborator for work orders.
// The core hands it fully assembled records on create/update and a
// (ticket, status) pair on status changes.
type WorkOrderRepository interface {
	Save(rec *model.WorkOrderRecord) error
	FindByTicket(ticket string) (*model.WorkOrderRecord, error)
	FindAll() ([]*model.WorkOrderRecord, error)
	UpdateStatus(ticket string, status model.Status, completedAt *time.Time) error
}

// workOrderRepository gorm-backed implementation.
type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a work order repository.
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

// Save inserts or updates a work order record.
func (r *workOrderRepository) Save(rec *model.WorkOrderRecord) error {
	return r.db.Save(rec).Error
}

// FindByTicket loads one record by ticket number.
func (r *workOrderRepository) FindByTicket(ticket string) (*model.WorkOrderRecord, error) {
	var rec model.WorkOrderRecord
	if err := r.db.Where("ticket_number = ?", ticket).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindAll loads every record, most recently requested first.
func (r *workOrderRepository) FindAll() ([]*model.WorkOrderRecord, error) {
	var recs []*model.WorkOrderRecord
	err := r.db.Order("requested_at DESC").Find(&recs).Error
	return recs, err
}

// UpdateStatus persists a status change and its completion timestamp.
func (r *workOrderRepository) UpdateStatus(ticket string, status model.Status, completedAt *time.Time) error {
	return r.db.Model(&model.WorkOrderRecord{}).
		Where("ticket_number = ?", ticket).
		Updates(map[string]interface{}{
			"status":       string(status),
			"completed_at": completedAt,
		}).Error
}
