package service

import (
	"github.com/sciops/workorder-gin/internal/model"
	"github.com/sciops/workorder-gin/internal/repository"
)

// PersonnelService enumerates the requester directory for the form. The
// directory is read-only here; work orders record the chosen name without
// enforcing it as a foreign key.
type PersonnelService interface {
	ListActive() ([]*model.PersonnelRecord, error)
}

// personnelService implementation.
type personnelService struct {
	repo repository.PersonnelRepository
}

// NewPersonnelService creates a personnel service.
func NewPersonnelService(repo repository.PersonnelRepository) PersonnelService {
	return &personnelService{repo: repo}
}

// ListActive returns the selectable requesters.
func (s *personnelService) ListActive() ([]*model.PersonnelRecord, error) {
	return s.repo.FindActive()
}
