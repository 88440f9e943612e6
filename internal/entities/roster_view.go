package entities

// Control is one clickable button bound to a vehicle.
type Control struct {
	ID    string
	Label string
	Free  bool
}

// RosterView is the rendered fleet: a status list plus rows of controls.
type RosterView struct {
	Title         string
	Description   string
	StatusHeading string
	Lines         []string
	Rows          [][]Control
}
