package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkOrder is a single maintenance or supply request. The envelope fields
// are shared by every kind; the Payload carries exactly the fields of the
// kind the order was created with.
type WorkOrder struct {
	SequenceID       int
	TicketNumber     string
	RequestedBy      string
	Description      string
	RequestedAt      time.Time
	CompletedAt      *time.Time
	Status           Status
	Operational      bool
	MaintenanceNotes string
	Payload          Payload
}

// Kind returns the payload discriminator.
func (o *WorkOrder) Kind() Kind {
	if o.Payload == nil {
		return ""
	}
	return o.Payload.Kind()
}

// Clone returns a deep copy. Payloads are value types, so copying the
// interface value is enough except for the materials item slice.
func (o *WorkOrder) Clone() *WorkOrder {
	dup := *o
	if o.CompletedAt != nil {
		at := *o.CompletedAt
		dup.CompletedAt = &at
	}
	switch p := o.Payload.(type) {
	case MaterialsPayload:
		items := make([]MaterialItem, len(p.Items))
		copy(items, p.Items)
		p.Items = items
		dup.Payload = p
	case FuelPayload:
		if p.RequestedFillPercent != nil {
			pct := *p.RequestedFillPercent
			p.RequestedFillPercent = &pct
		}
		dup.Payload = p
	}
	return &dup
}

// workOrderJSON is the wire shape of a work order: the envelope plus a
// kind tag and the payload object of that kind only.
type workOrderJSON struct {
	SequenceID       int             `json:"sequence_id"`
	TicketNumber     string          `json:"ticket_number"`
	Kind             Kind            `json:"kind"`
	RequestedBy      string          `json:"requested_by"`
	Description      string          `json:"description"`
	RequestedAt      time.Time       `json:"requested_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	Status           Status          `json:"status"`
	Operational      bool            `json:"operational"`
	MaintenanceNotes string          `json:"maintenance_notes,omitempty"`
	Payload          json.RawMessage `json:"payload"`
}

// MarshalJSON encodes the order as envelope + tagged payload.
func (o *WorkOrder) MarshalJSON() ([]byte, error) {
	if o.Payload == nil {
		return nil, fmt.Errorf("work order %s has no payload", o.TicketNumber)
	}
	payload, err := json.Marshal(o.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", o.Kind(), err)
	}
	return json.Marshal(workOrderJSON{
		SequenceID:       o.SequenceID,
		TicketNumber:     o.TicketNumber,
		Kind:             o.Kind(),
		RequestedBy:      o.RequestedBy,
		Description:      o.Description,
		RequestedAt:      o.RequestedAt,
		CompletedAt:      o.CompletedAt,
		Status:           o.Status,
		Operational:      o.Operational,
		MaintenanceNotes: o.MaintenanceNotes,
		Payload:          payload,
	})
}

// UnmarshalJSON decodes the envelope, then dispatches on the kind tag to
// decode the payload into its concrete variant.
func (o *WorkOrder) UnmarshalJSON(data []byte) error {
	var wire workOrderJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	status, err := ParseStatus(string(wire.Status))
	if err != nil {
		return err
	}
	payload, err := DecodePayload(wire.Kind, wire.Payload)
	if err != nil {
		return err
	}
	o.SequenceID = wire.SequenceID
	o.TicketNumber = wire.TicketNumber
	o.RequestedBy = wire.RequestedBy
	o.Description = wire.Description
	o.RequestedAt = wire.RequestedAt
	o.CompletedAt = wire.CompletedAt
	o.Status = status
	o.Operational = wire.Operational
	o.MaintenanceNotes = wire.MaintenanceNotes
	o.Payload = payload
	return nil
}

// DecodePayload decodes raw payload JSON into the concrete variant for
// kind. The switch is exhaustive over the closed kind set.
func DecodePayload(kind Kind, data []byte) (Payload, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	switch kind {
	case KindStructural:
		var p StructuralPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode structural payload: %w", err)
		}
		return p, nil
	case KindVehicle:
		var p VehiclePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode vehicle payload: %w", err)
		}
		return p, nil
	case KindEquipment:
		var p EquipmentPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode equipment payload: %w", err)
		}
		return p, nil
	case KindFuel:
		var p FuelPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode fuel payload: %w", err)
		}
		return p, nil
	case KindMaterials:
		var p MaterialsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode materials payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown work order kind %q", kind)
	}
}
