package model

// Payload is the variant-specific part of a work order. The interface is
// sealed: exactly the five request shapes implement it, so per-kind logic
// can switch over a closed set and a new kind forces every switch to grow
// a case.
type Payload interface {
	// Kind is the discriminator for this payload shape.
	Kind() Kind
	// Identity is the variant field used for free-text search
	// (installation location, vehicle ID, equipment ID, ...).
	Identity() string

	sealedPayload()
}

// StructureType classifies the affected structure in a structural order.
type StructureType string

const (
	StructureWall       StructureType = "wall"
	StructureCeiling    StructureType = "ceiling"
	StructureFloor      StructureType = "floor"
	StructureLighting   StructureType = "lighting"
	StructureHydraulic  StructureType = "hydraulic"
	StructureElectrical StructureType = "electrical"
	StructureHVAC       StructureType = "hvac"
)

// Valid reports whether t is a known structure type.
func (t StructureType) Valid() bool {
	switch t {
	case StructureWall, StructureCeiling, StructureFloor, StructureLighting,
		StructureHydraulic, StructureElectrical, StructureHVAC:
		return true
	}
	return false
}

// Urgency is the requester-declared priority.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Valid reports whether u is a known urgency level.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// VehicleType classifies the brigade fleet vehicle.
type VehicleType string

const (
	VehicleCrashTender VehicleType = "crash_tender"
	VehicleRescue      VehicleType = "rescue"
	VehicleAmbulance   VehicleType = "ambulance"
	VehicleCommand     VehicleType = "command"
	VehicleSupport     VehicleType = "support"
)

// Valid reports whether t is a known vehicle type.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleCrashTender, VehicleRescue, VehicleAmbulance, VehicleCommand, VehicleSupport:
		return true
	}
	return false
}

// MaintenanceKind distinguishes scheduled from unplanned interventions.
type MaintenanceKind string

const (
	MaintenancePreventive MaintenanceKind = "preventive"
	MaintenanceCorrective MaintenanceKind = "corrective"
	MaintenanceEmergency  MaintenanceKind = "emergency"
)

// Valid reports whether m is a known maintenance kind.
func (m MaintenanceKind) Valid() bool {
	switch m {
	case MaintenancePreventive, MaintenanceCorrective, MaintenanceEmergency:
		return true
	}
	return false
}

// FuelType is the fuel requested for a fleet vehicle.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelEthanol  FuelType = "ethanol"
)

// Valid reports whether f is a known fuel type.
func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelEthanol:
		return true
	}
	return false
}

// MaterialUnit is the order unit for a requested material.
type MaterialUnit string

const (
	UnitPiece    MaterialUnit = "piece"
	UnitBox      MaterialUnit = "box"
	UnitLiter    MaterialUnit = "liter"
	UnitMeter    MaterialUnit = "meter"
	UnitKilogram MaterialUnit = "kilogram"
	UnitPair     MaterialUnit = "pair"
	UnitPackage  MaterialUnit = "package"
)

// Valid reports whether u is a known material unit.
func (u MaterialUnit) Valid() bool {
	switch u {
	case UnitPiece, UnitBox, UnitLiter, UnitMeter, UnitKilogram, UnitPair, UnitPackage:
		return true
	}
	return false
}

// StructuralPayload describes damage to a building or installation.
type StructuralPayload struct {
	Location      string        `json:"location"`
	StructureType StructureType `json:"structure_type"`
	Urgency       Urgency       `json:"urgency"`
}

func (StructuralPayload) Kind() Kind { return KindStructural }
func (p StructuralPayload) Identity() string { return p.Location }
func (StructuralPayload) sealedPayload() {}

// VehiclePayload describes maintenance on a fleet vehicle.
type VehiclePayload struct {
	VehicleID       string          `json:"vehicle_id"`
	VehicleType     VehicleType     `json:"vehicle_type"`
	Odometer        int             `json:"odometer"`
	MaintenanceKind MaintenanceKind `json:"maintenance_kind"`
}

func (VehiclePayload) Kind() Kind { return KindVehicle }
func (p VehiclePayload) Identity() string { return p.VehicleID }
func (VehiclePayload) sealedPayload() {}

// EquipmentPayload describes maintenance on an inventoried equipment item.
type EquipmentPayload struct {
	EquipmentID     string          `json:"equipment_id"`
	SerialNumber    string          `json:"serial_number"`
	Model           string          `json:"model"`
	Manufacturer    string          `json:"manufacturer"`
	Location        string          `json:"location"`
	MaintenanceKind MaintenanceKind `json:"maintenance_kind"`
}

func (EquipmentPayload) Kind() Kind { return KindEquipment }
func (p EquipmentPayload) Identity() string { return p.EquipmentID }
func (EquipmentPayload) sealedPayload() {}

// FuelPayload describes a vehicle refuelling request.
// RequestedFillPercent is a pointer because the validator must distinguish
// "absent" from an explicit zero.
type FuelPayload struct {
	VehicleID            string   `json:"vehicle_id"`
	FuelType             FuelType `json:"fuel_type"`
	RequestedFillPercent *int     `json:"requested_fill_percent"`
	CurrentFillPercent   int      `json:"current_fill_percent"`
	Urgency              Urgency  `json:"urgency"`
}

func (FuelPayload) Kind() Kind { return KindFuel }
func (p FuelPayload) Identity() string { return p.VehicleID }
func (FuelPayload) sealedPayload() {}

// MaterialItem is one line of a materials request.
type MaterialItem struct {
	Name          string       `json:"name"`
	Quantity      int          `json:"quantity"`
	Unit          MaterialUnit `json:"unit"`
	Specification string       `json:"specification,omitempty"`
}

// MaterialsPayload describes a supply requisition.
type MaterialsPayload struct {
	Justification string         `json:"justification"`
	Items         []MaterialItem `json:"items"`
}

func (MaterialsPayload) Kind() Kind { return KindMaterials }
func (p MaterialsPayload) Identity() string { return p.Justification }
func (MaterialsPayload) sealedPayload() {}
