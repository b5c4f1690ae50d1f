package repository

import (
	"github.com/sciops/workorder-gin/internal/model"
	"gorm.io/gorm"
)

// PersonnelRepository reads the requester directory. The directory is
// maintained elsewhere; this side only enumerates it for the form.
type PersonnelRepository interface {
	FindActive() ([]*model.PersonnelRecord, error)
}

// personnelRepository gorm-backed implementation.
type personnelRepository struct {
	db *gorm.DB
}

// NewPersonnelRepository creates a personnel repository.
func NewPersonnelRepository(db *gorm.DB) PersonnelRepository {
	return &personnelRepository{db: db}
}

// FindActive returns active personnel ordered by name.
func (r *personnelRepository) FindActive() ([]*model.PersonnelRecord, error) {
	var recs []*model.PersonnelRecord
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&recs).Error
	return recs, err
}
