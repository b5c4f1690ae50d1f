package model

import "fmt"

// Kind is the discriminator selecting which payload shape a work order carries.
type Kind string

const (
	KindStructural Kind = "structural"
	KindVehicle    Kind = "vehicle"
	KindEquipment  Kind = "equipment"
	KindFuel       Kind = "fuel"
	KindMaterials  Kind = "materials"
)

// Kinds returns every work order kind in presentation order.
func Kinds() []Kind {
	return []Kind{KindStructural, KindVehicle, KindEquipment, KindFuel, KindMaterials}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindStructural, KindVehicle, KindEquipment, KindFuel, KindMaterials:
		return true
	}
	return false
}

// ParseKind normalizes a raw kind string.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if !k.Valid() {
		return "", fmt.Errorf("unknown work order kind %q", raw)
	}
	return k, nil
}
