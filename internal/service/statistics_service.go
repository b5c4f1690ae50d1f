package service

import (
	"github.com/sciops/workorder-gin/internal/model"
	"gorm.io/gorm"
)

// StatisticsService feeds the dashboard charts.
type StatisticsService interface {
	CountByKind() ([]*WorkOrdersByKind, error)
	CountByStatus() ([]*WorkOrdersByStatus, error)
	CountByMonth() ([]*WorkOrdersByMonth, error)
	CompletionSummary() (*CompletionSummary, error)
}

// WorkOrdersByKind is one slice of the kind distribution chart.
type WorkOrdersByKind struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// WorkOrdersByStatus is one slice of the status distribution chart.
type WorkOrdersByStatus struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// WorkOrdersByMonth is one bar of the requests-per-month chart.
type WorkOrdersByMonth struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

// CompletionSummary is the headline dashboard figure set.
type CompletionSummary struct {
	Total     int64 `json:"total"`
	Open      int64 `json:"open"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// statisticsService implementation over the persisted work orders.
type statisticsService struct {
	db *gorm.DB
}

// NewStatisticsService creates a statistics service.
func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// CountByKind groups work orders by kind.
func (s *statisticsService) CountByKind() ([]*WorkOrdersByKind, error) {
	var results []*WorkOrdersByKind
	err := s.db.Model(&model.WorkOrderRecord{}).
		Select("kind, COUNT(*) as count").
		Group("kind").
		Order("count DESC").
		Scan(&results).Error
	return results, err
}

// CountByStatus groups work orders by status.
func (s *statisticsService) CountByStatus() ([]*WorkOrdersByStatus, error) {
	var results []*WorkOrdersByStatus
	err := s.db.Model(&model.WorkOrderRecord{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("count DESC").
		Scan(&results).Error
	return results, err
}

// CountByMonth groups work orders by request month. strftime works on
// sqlite; to_char would be the postgres spelling, so the grouping is done
// on a portable substring of the ISO timestamp instead.
func (s *statisticsService) CountByMonth() ([]*WorkOrdersByMonth, error) {
	var results []*WorkOrdersByMonth
	err := s.db.Model(&model.WorkOrderRecord{}).
		Select("substr(CAST(requested_at AS TEXT), 1, 7) as month, COUNT(*) as count").
		Group("month").
		Order("month ASC").
		Scan(&results).Error
	return results, err
}

// CompletionSummary totals the open/closed split.
func (s *statisticsService) CompletionSummary() (*CompletionSummary, error) {
	summary := &CompletionSummary{}

	if err := s.db.Model(&model.WorkOrderRecord{}).Count(&summary.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.WorkOrderRecord{}).
		Where("status IN ?", []string{
			string(model.StatusPending),
			string(model.StatusInProgress),
			string(model.StatusAwaitingApproval),
		}).
		Count(&summary.Open).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.WorkOrderRecord{}).
		Where("status = ?", string(model.StatusCompleted)).
		Count(&summary.Completed).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.WorkOrderRecord{}).
		Where("status = ?", string(model.StatusCancelled)).
		Count(&summary.Cancelled).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
