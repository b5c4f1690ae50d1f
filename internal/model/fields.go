package model

import "fmt"

// FieldSpec tells the presentation layer which variant field to render,
// whether it is required, and the allowed enum values if it is an enum.
type FieldSpec struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"` // text, integer, percent, enum, items
	Required bool     `json:"required"`
	Enum     []string `json:"enum,omitempty"`
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

var (
	structureTypeValues   = enumValues([]StructureType{StructureWall, StructureCeiling, StructureFloor, StructureLighting, StructureHydraulic, StructureElectrical, StructureHVAC})
	urgencyValues         = enumValues([]Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical})
	vehicleTypeValues     = enumValues([]VehicleType{VehicleCrashTender, VehicleRescue, VehicleAmbulance, VehicleCommand, VehicleSupport})
	maintenanceKindValues = enumValues([]MaintenanceKind{MaintenancePreventive, MaintenanceCorrective, MaintenanceEmergency})
	fuelTypeValues        = enumValues([]FuelType{FuelGasoline, FuelDiesel, FuelEthanol})
	materialUnitValues    = enumValues([]MaterialUnit{UnitPiece, UnitBox, UnitLiter, UnitMeter, UnitKilogram, UnitPair, UnitPackage})
)

// KindFields returns the variant field contract for kind, in form order.
func KindFields(kind Kind) ([]FieldSpec, error) {
	switch kind {
	case KindStructural:
		return []FieldSpec{
			{Name: "location", Type: "text", Required: true},
			{Name: "structure_type", Type: "enum", Enum: structureTypeValues},
			{Name: "urgency", Type: "enum", Enum: urgencyValues},
		}, nil
	case KindVehicle:
		return []FieldSpec{
			{Name: "vehicle_id", Type: "text", Required: true},
			{Name: "vehicle_type", Type: "enum", Enum: vehicleTypeValues},
			{Name: "odometer", Type: "integer"},
			{Name: "maintenance_kind", Type: "enum", Enum: maintenanceKindValues},
		}, nil
	case KindEquipment:
		return []FieldSpec{
			{Name: "equipment_id", Type: "text", Required: true},
			{Name: "serial_number", Type: "text"},
			{Name: "model", Type: "text"},
			{Name: "manufacturer", Type: "text"},
			{Name: "location", Type: "text"},
			{Name: "maintenance_kind", Type: "enum", Enum: maintenanceKindValues},
		}, nil
	case KindFuel:
		return []FieldSpec{
			{Name: "vehicle_id", Type: "text", Required: true},
			{Name: "fuel_type", Type: "enum", Enum: fuelTypeValues},
			{Name: "requested_fill_percent", Type: "percent", Required: true},
			{Name: "current_fill_percent", Type: "percent"},
			{Name: "urgency", Type: "enum", Enum: urgencyValues},
		}, nil
	case KindMaterials:
		return []FieldSpec{
			{Name: "justification", Type: "text", Required: true},
			{Name: "items", Type: "items", Required: true, Enum: materialUnitValues},
		}, nil
	default:
		return nil, fmt.Errorf("unknown work order kind %q", kind)
	}
}
