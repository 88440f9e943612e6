package entities

// VehicleStatus is the admin API view of one vehicle.
type VehicleStatus struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Free     bool    `json:"free"`
	Occupant *string `json:"occupant,omitempty"`
}

type FleetResponse struct {
	Total    int             `json:"total"`
	Free     int             `json:"free"`
	Vehicles []VehicleStatus `json:"vehicles"`
}
