package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sciops/workorder-gin/internal/metrics"
	"github.com/sciops/workorder-gin/internal/model"
	"github.com/sciops/workorder-gin/internal/repository"
	"github.com/sciops/workorder-gin/internal/statemachine"
	"github.com/sciops/workorder-gin/internal/store"
	"github.com/sciops/workorder-gin/internal/ws"
	"github.com/sirupsen/logrus"
)

// ErrNotFound reports a ticket number with no work order behind it.
var ErrNotFound = errors.New("work order not found")

// WorkOrderService orchestrates the work order lifecycle: validation,
// numbering, the session store, persistence and the status engine.
type WorkOrderService interface {
	Create(ctx context.Context, req *CreateWorkOrderRequest) (*model.WorkOrder, error)
	Get(ticket string) (*model.WorkOrder, error)
	Update(ctx context.Context, ticket string, req *UpdateWorkOrderRequest) (*model.WorkOrder, error)
	SetStatus(ctx context.Context, ticket string, status model.Status, operator string) (*model.WorkOrder, error)
	List(f store.Filter) []*model.WorkOrder
	History(ticket string) ([]*model.StatusHistoryRecord, error)
}

// CreateWorkOrderRequest carries the envelope fields and the raw variant
// payload of a new work order.
// @Description Work order creation request
type CreateWorkOrderRequest struct {
	Kind             model.Kind      `json:"kind" example:"vehicle" binding:"required"`
	RequestedBy      string          `json:"requested_by" example:"Sgt. Almeida"`
	Description      string          `json:"description" example:"Pump pressure dropping under load"`
	Operational      bool            `json:"operational" example:"true"`
	MaintenanceNotes string          `json:"maintenance_notes,omitempty"`
	Operator         string          `json:"operator,omitempty" example:"almeida"`
	Payload          json.RawMessage `json:"payload" swaggertype:"object"`
}

// UpdateWorkOrderRequest is a partial edit. Nil fields keep their current
// value. Kind, sequence ID and ticket number are immutable; sending a
// different value is rejected.
// @Description Work order update request
type UpdateWorkOrderRequest struct {
	Kind             model.Kind      `json:"kind,omitempty"`
	SequenceID       int             `json:"sequence_id,omitempty"`
	TicketNumber     string          `json:"ticket_number,omitempty"`
	RequestedBy      *string         `json:"requested_by,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Operational      *bool           `json:"operational,omitempty"`
	MaintenanceNotes *string         `json:"maintenance_notes,omitempty"`
	Payload          json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

// workOrderService implementation. The store is the single source of truth
// for the session; the repository is the external persistence collaborator.
type workOrderService struct {
	orders       *store.Store
	repo         repository.WorkOrderRepository
	history      repository.StatusHistoryRepository
	hub          *ws.Hub
	logger       *logrus.Logger
	ticketPrefix string
}

// NewWorkOrderService creates the manager. The hub may be nil when no
// dashboard push is wired (tests, migrate command).
func NewWorkOrderService(
	orders *store.Store,
	repo repository.WorkOrderRepository,
	history repository.StatusHistoryRepository,
	hub *ws.Hub,
	logger *logrus.Logger,
	ticketPrefix string,
) WorkOrderService {
	if logger == nil {
		logger = logrus.New()
	}
	return &workOrderService{
		orders:       orders,
		repo:         repo,
		history:      history,
		hub:          hub,
		logger:       logger,
		ticketPrefix: ticketPrefix,
	}
}

// LoadStore fills the session store from the persistence collaborator,
// failing on numbering conflicts or unmigrated legacy statuses.
func LoadStore(orders *store.Store, repo repository.WorkOrderRepository) error {
	recs, err := repo.FindAll()
	if err != nil {
		return fmt.Errorf("load work orders: %w", err)
	}
	loaded := make([]*model.WorkOrder, 0, len(recs))
	for _, rec := range recs {
		o, err := rec.WorkOrder()
		if err != nil {
			return fmt.Errorf("load work orders: %w", err)
		}
		loaded = append(loaded, o)
	}
	return orders.Load(loaded)
}

// Create validates the candidate, assigns the next ticket number, inserts
// it into the store and persists it. On any rejection nothing is mutated.
func (s *workOrderService) Create(ctx context.Context, req *CreateWorkOrderRequest) (*model.WorkOrder, error) {
	kind, err := model.ParseKind(string(req.Kind))
	if err != nil {
		return nil, &model.ValidationError{Errors: []string{err.Error()}}
	}
	payload, err := model.DecodePayload(kind, req.Payload)
	if err != nil {
		return nil, &model.ValidationError{Errors: []string{err.Error()}}
	}

	now := time.Now()
	order := &model.WorkOrder{
		RequestedBy:      req.RequestedBy,
		Description:      req.Description,
		RequestedAt:      now,
		Status:           statemachine.Initial(),
		Operational:      req.Operational,
		MaintenanceNotes: req.MaintenanceNotes,
		Payload:          payload,
	}

	if result := model.Validate(order); !result.Valid {
		return nil, result.Err()
	}

	order.SequenceID, order.TicketNumber = s.orders.NextTicketNumber(s.ticketPrefix, now)

	if err := s.orders.Insert(order); err != nil {
		return nil, err
	}
	rec, err := model.NewWorkOrderRecord(order)
	if err != nil {
		s.orders.Remove(order.TicketNumber)
		return nil, err
	}
	if err := s.repo.Save(rec); err != nil {
		s.orders.Remove(order.TicketNumber)
		return nil, fmt.Errorf("persist work order %s: %w", order.TicketNumber, err)
	}

	s.appendHistory(order.TicketNumber, "", order.Status, req.Operator)
	s.publish("work_order.created", order)
	metrics.RecordWorkOrderCreated(string(kind))
	s.refreshStatusGauge()

	s.logger.WithFields(logrus.Fields{
		"ticket": order.TicketNumber,
		"kind":   kind,
	}).Info("work order created")

	return order, nil
}

// Get returns the order with the given ticket number.
func (s *workOrderService) Get(ticket string) (*model.WorkOrder, error) {
	order, ok := s.orders.Get(ticket)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticket, ErrNotFound)
	}
	return order, nil
}

// Update merges the edit onto the stored order, re-validates the result
// and commits it. Identity fields and the kind cannot change.
func (s *workOrderService) Update(ctx context.Context, ticket string, req *UpdateWorkOrderRequest) (*model.WorkOrder, error) {
	current, ok := s.orders.Get(ticket)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticket, ErrNotFound)
	}

	var immutable []string
	if req.Kind != "" && req.Kind != current.Kind() {
		immutable = append(immutable, "kind cannot be changed")
	}
	if req.SequenceID != 0 && req.SequenceID != current.SequenceID {
		immutable = append(immutable, "sequence_id cannot be changed")
	}
	if req.TicketNumber != "" && req.TicketNumber != current.TicketNumber {
		immutable = append(immutable, "ticket_number cannot be changed")
	}
	if len(immutable) > 0 {
		return nil, &model.ValidationError{Errors: immutable}
	}

	merged := current.Clone()
	if req.RequestedBy != nil {
		merged.RequestedBy = *req.RequestedBy
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Operational != nil {
		merged.Operational = *req.Operational
	}
	if req.MaintenanceNotes != nil {
		merged.MaintenanceNotes = *req.MaintenanceNotes
	}
	if len(req.Payload) > 0 {
		payload, err := model.DecodePayload(current.Kind(), req.Payload)
		if err != nil {
			return nil, &model.ValidationError{Errors: []string{err.Error()}}
		}
		merged.Payload = payload
	}

	if result := model.Validate(merged); !result.Valid {
		return nil, result.Err()
	}

	rec, err := model.NewWorkOrderRecord(merged)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(rec); err != nil {
		return nil, fmt.Errorf("persist work order %s: %w", ticket, err)
	}
	if err := s.orders.Replace(merged); err != nil {
		return nil, err
	}

	s.logger.WithField("ticket", ticket).Info("work order updated")
	return merged, nil
}

// SetStatus delegates to the status engine and commits the transition.
// Illegal transitions are rejected with the attempted and current status.
func (s *workOrderService) SetStatus(ctx context.Context, ticket string, status model.Status, operator string) (*model.WorkOrder, error) {
	current, ok := s.orders.Get(ticket)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticket, ErrNotFound)
	}

	from := current.Status
	moved := current.Clone()
	if err := statemachine.Apply(moved, status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ticket, moved.Status, moved.CompletedAt); err != nil {
		return nil, fmt.Errorf("persist status of %s: %w", ticket, err)
	}
	if err := s.orders.Replace(moved); err != nil {
		return nil, err
	}

	s.appendHistory(ticket, from, moved.Status, operator)
	s.publish("work_order.status_changed", moved)
	metrics.RecordStatusTransition(string(from), string(moved.Status))
	s.refreshStatusGauge()

	s.logger.WithFields(logrus.Fields{
		"ticket": ticket,
		"from":   from,
		"to":     moved.Status,
	}).Info("work order status changed")

	return moved, nil
}

// List filters the session store; read-only, newest first.
func (s *workOrderService) List(f store.Filter) []*model.WorkOrder {
	return s.orders.List(f)
}

// History returns the recorded transitions of a ticket.
func (s *workOrderService) History(ticket string) ([]*model.StatusHistoryRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.FindByTicket(ticket)
}

func (s *workOrderService) appendHistory(ticket string, from, to model.Status, operator string) {
	if s.history == nil {
		return
	}
	if operator == "" {
		operator = "system"
	}
	rec := &model.StatusHistoryRecord{
		ID:           uuid.New().String(),
		TicketNumber: ticket,
		FromStatus:   string(from),
		ToStatus:     string(to),
		Operator:     operator,
		CreatedAt:    time.Now(),
	}
	if err := s.history.Append(rec); err != nil {
		// History is an audit convenience; a failed append must not undo a
		// committed transition.
		s.logger.WithError(err).WithField("ticket", ticket).Warn("failed to append status history")
	}
}

func (s *workOrderService) publish(eventType string, o *model.WorkOrder) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(ws.Event{
		Type:         eventType,
		TicketNumber: o.TicketNumber,
		Kind:         string(o.Kind()),
		Status:       string(o.Status),
		At:           time.Now(),
	})
}

func (s *workOrderService) refreshStatusGauge() {
	counts := make(map[model.Status]int)
	for _, o := range s.orders.List(store.Filter{}) {
		counts[o.Status]++
	}
	for _, status := range model.Statuses() {
		metrics.UpdateWorkOrdersByStatus(string(status), float64(counts[status]))
	}
}
