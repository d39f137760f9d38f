package types

// VehicleStatus is the operational status of a vehicle in the fleet
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

func (s VehicleStatus) Validate() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusRented, VehicleStatusMaintenance, VehicleStatusRetired:
		return true
	}
	return false
}

// VehicleFilter represents filters for listing vehicles
type VehicleFilter struct {
	QueryFilter

	VehicleStatus *VehicleStatus `json:"vehicle_status,omitempty" form:"vehicle_status"`
}
