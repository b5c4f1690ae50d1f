package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// WorkOrderRecord is the persisted shape of a work order: the envelope as
// columns plus the variant payload serialized into a JSON blob.
type WorkOrderRecord struct {
	SequenceID       int        `gorm:"primaryKey;autoIncrement:false"`
	TicketNumber     string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	Kind             string     `gorm:"type:varchar(16);not null;index"`
	Status           string     `gorm:"type:varchar(32);not null;index"`
	RequestedBy      string     `gorm:"type:varchar(128);not null;index"`
	Description      string     `gorm:"type:text;not null"`
	Operational      bool       `gorm:"not null"`
	MaintenanceNotes string     `gorm:"type:text"`
	RequestedAt      time.Time  `gorm:"not null;index"`
	CompletedAt      *time.Time `gorm:"index"`
	Payload          []byte     `gorm:"type:jsonb;not null"` // serialized variant payload
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

// TableName sets the table name.
func (WorkOrderRecord) TableName() string {
	return "work_orders"
}

// Validate checks the record is storable.
func (r *WorkOrderRecord) Validate() error {
	if r.SequenceID <= 0 {
		return errors.New("sequence ID is required")
	}
	if r.TicketNumber == "" {
		return errors.New("ticket number is required")
	}
	if r.Kind == "" {
		return errors.New("kind is required")
	}
	if r.Status == "" {
		return errors.New("status is required")
	}
	if len(r.Payload) == 0 {
		return errors.New("payload is required")
	}
	return nil
}

// NewWorkOrderRecord converts a domain work order into its persisted row.
func NewWorkOrderRecord(o *WorkOrder) (*WorkOrderRecord, error) {
	if o.Payload == nil {
		return nil, fmt.Errorf("work order %s has no payload", o.TicketNumber)
	}
	payload, err := json.Marshal(o.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", o.Kind(), err)
	}
	return &WorkOrderRecord{
		SequenceID:       o.SequenceID,
		TicketNumber:     o.TicketNumber,
		Kind:             string(o.Kind()),
		Status:           string(o.Status),
		RequestedBy:      o.RequestedBy,
		Description:      o.Description,
		Operational:      o.Operational,
		MaintenanceNotes: o.MaintenanceNotes,
		RequestedAt:      o.RequestedAt,
		CompletedAt:      o.CompletedAt,
		Payload:          payload,
	}, nil
}

// WorkOrder rebuilds the domain work order from the persisted row. Status
// strings are normalized here, so legacy aliases never leak past the
// persistence boundary; an unknown status is a migration error.
func (r *WorkOrderRecord) WorkOrder() (*WorkOrder, error) {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.TicketNumber, err)
	}
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.TicketNumber, err)
	}
	payload, err := DecodePayload(kind, r.Payload)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.TicketNumber, err)
	}
	return &WorkOrder{
		SequenceID:       r.SequenceID,
		TicketNumber:     r.TicketNumber,
		RequestedBy:      r.RequestedBy,
		Description:      r.Description,
		RequestedAt:      r.RequestedAt,
		CompletedAt:      r.CompletedAt,
		Status:           status,
		Operational:      r.Operational,
		MaintenanceNotes: r.MaintenanceNotes,
		Payload:          payload,
	}, nil
}

// StatusHistoryRecord is one status transition of a work order.
type StatusHistoryRecord struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	TicketNumber string    `gorm:"type:varchar(32);not null;index"`
	FromStatus   string    `gorm:"type:varchar(32)"`
	ToStatus     string    `gorm:"type:varchar(32);not null"`
	Operator     string    `gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName sets the table name.
func (StatusHistoryRecord) TableName() string {
	return "status_history"
}

// Validate checks the history row is storable.
func (r *StatusHistoryRecord) Validate() error {
	if r.ID == "" {
		return errors.New("history ID is required")
	}
	if r.TicketNumber == "" {
		return errors.New("ticket number is required")
	}
	if r.ToStatus == "" {
		return errors.New("to status is required")
	}
	if r.Operator == "" {
		return errors.New("operator is required")
	}
	return nil
}

// PersonnelRecord is one entry of the requester directory. The directory
// is a read-only enumeration for the form; the validator does not enforce
// it as a foreign key.
type PersonnelRecord struct {
	ID     string `gorm:"primaryKey;type:varchar(64)"`
	Name   string `gorm:"type:varchar(128);not null"`
	Rank   string `gorm:"type:varchar(64)"`
	Active bool   `gorm:"not null;default:true;index"`
}

// TableName sets the table name.
func (PersonnelRecord) TableName() string {
	return "personnel"
}
