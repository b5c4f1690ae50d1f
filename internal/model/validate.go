package model

import (
	"fmt"
	"strings"
)

// ValidationResult is the outcome of validating a candidate work order.
// Errors lists every violated rule so the form can be redisplayed with all
// problems highlighted in one pass.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationError is the error value returned by create/update when the
// candidate fails validation. It carries the complete rule list.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Err converts the result into a *ValidationError, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// Validate checks required-field completeness for the candidate's kind.
// It is pure: the candidate is never mutated, and the same input always
// produces the same result. Envelope rules run first, then the payload
// rules selected by an exhaustive switch over the variant set.
func Validate(o *WorkOrder) ValidationResult {
	var errs []string

	if strings.TrimSpace(o.RequestedBy) == "" {
		errs = append(errs, "requested_by is required")
	}
	if strings.TrimSpace(o.Description) == "" {
		errs = append(errs, "description is required")
	}

	switch p := o.Payload.(type) {
	case StructuralPayload:
		errs = append(errs, validateStructural(p)...)
	case VehiclePayload:
		errs = append(errs, validateVehicle(p)...)
	case EquipmentPayload:
		errs = append(errs, validateEquipment(p)...)
	case FuelPayload:
		errs = append(errs, validateFuel(p)...)
	case MaterialsPayload:
		errs = append(errs, validateMaterials(p)...)
	case nil:
		errs = append(errs, "payload is required")
	default:
		// Unreachable while Payload stays sealed.
		errs = append(errs, fmt.Sprintf("unsupported payload kind %q", o.Kind()))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateStructural(p StructuralPayload) []string {
	var errs []string
	if strings.TrimSpace(p.Location) == "" {
		errs = append(errs, "location is required")
	}
	if p.StructureType != "" && !p.StructureType.Valid() {
		errs = append(errs, fmt.Sprintf("structure_type %q is not a known structure type", p.StructureType))
	}
	if p.Urgency != "" && !p.Urgency.Valid() {
		errs = append(errs, fmt.Sprintf("urgency %q is not a known urgency", p.Urgency))
	}
	return errs
}

func validateVehicle(p VehiclePayload) []string {
	var errs []string
	if strings.TrimSpace(p.VehicleID) == "" {
		errs = append(errs, "vehicle_id is required")
	}
	if p.VehicleType != "" && !p.VehicleType.Valid() {
		errs = append(errs, fmt.Sprintf("vehicle_type %q is not a known vehicle type", p.VehicleType))
	}
	if p.Odometer < 0 {
		errs = append(errs, "odometer must not be negative")
	}
	if p.MaintenanceKind != "" && !p.MaintenanceKind.Valid() {
		errs = append(errs, fmt.Sprintf("maintenance_kind %q is not a known maintenance kind", p.MaintenanceKind))
	}
	return errs
}

func validateEquipment(p EquipmentPayload) []string {
	var errs []string
	if strings.TrimSpace(p.EquipmentID) == "" {
		errs = append(errs, "equipment_id is required")
	}
	if p.MaintenanceKind != "" && !p.MaintenanceKind.Valid() {
		errs = append(errs, fmt.Sprintf("maintenance_kind %q is not a known maintenance kind", p.MaintenanceKind))
	}
	return errs
}

func validateFuel(p FuelPayload) []string {
	var errs []string
	if strings.TrimSpace(p.VehicleID) == "" {
		errs = append(errs, "vehicle_id is required")
	}
	switch {
	case p.RequestedFillPercent == nil:
		errs = append(errs, "requested_fill_percent is required")
	case *p.RequestedFillPercent < 0 || *p.RequestedFillPercent > 100:
		errs = append(errs, "requested_fill_percent must be between 0 and 100")
	}
	if p.CurrentFillPercent < 0 || p.CurrentFillPercent > 100 {
		errs = append(errs, "current_fill_percent must be between 0 and 100")
	}
	if p.FuelType != "" && !p.FuelType.Valid() {
		errs = append(errs, fmt.Sprintf("fuel_type %q is not a known fuel type", p.FuelType))
	}
	return errs
}

func validateMaterials(p MaterialsPayload) []string {
	var errs []string
	if strings.TrimSpace(p.Justification) == "" {
		errs = append(errs, "justification is required")
	}
	named := 0
	for i, item := range p.Items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		named++
		if item.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("material %d (%s): quantity must be positive", i+1, item.Name))
		}
		if item.Unit != "" && !item.Unit.Valid() {
			errs = append(errs, fmt.Sprintf("material %d (%s): unit %q is not a known unit", i+1, item.Name, item.Unit))
		}
	}
	if named == 0 {
		errs = append(errs, "at least one material with a name is required")
	}
	return errs
}
