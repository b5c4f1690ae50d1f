package repository

import (
	"github.com/sciops/workorder-gin/internal/model"
	"gorm.io/gorm"
)

// StatusHistoryRepository stores who moved a work order and when.
type StatusHistoryRepository interface {
	Append(rec *model.StatusHistoryRecord) error
	FindByTicket(ticket string) ([]*model.StatusHistoryRecord, error)
}

// statusHistoryRepository gorm-backed implementation.
type statusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository creates a status history repository.
func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

// Append records one transition.
func (r *statusHistoryRepository) Append(rec *model.StatusHistoryRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return r.db.Create(rec).Error
}

// FindByTicket returns a ticket's transitions in chronological order.
func (r *statusHistoryRepository) FindByTicket(ticket string) ([]*model.StatusHistoryRecord, error) {
	var recs []*model.StatusHistoryRecord
	err := r.db.Where("ticket_number = ?", ticket).Order("created_at ASC").Find(&recs).Error
	return recs, err
}
