package service

import (
	"fmt"
	"strings"

	"truckbook/internal/db"
	"truckbook/internal/entities"
	"truckbook/internal/utils"
)

const (
	controlPrefix  = "car_"
	controlsPerRow = 5
)

// ControlID encodes a vehicle key into a control identifier.
func ControlID(vehicleID string) string {
	return controlPrefix + vehicleID
}

// ParseControlID extracts the vehicle key from a control identifier.
func ParseControlID(controlID string) (string, bool) {
	key, ok := strings.CutPrefix(controlID, controlPrefix)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// RenderRoster builds the status list and the control rows for fleet.
func RenderRoster(fleet db.Fleet, msgs Messages) *entities.RosterView {
	view := &entities.RosterView{
		Title:         msgs.Title,
		Description:   msgs.Description,
		StatusHeading: msgs.StatusHeading,
		Lines:         make([]string, 0, len(fleet)),
	}

	var row []entities.Control
	for _, v := range fleet {
		state := msgs.Free
		if !v.Free && v.Occupant != nil {
			state = fmt.Sprintf(msgs.Taken, utils.Mention(*v.Occupant))
		}
		view.Lines = append(view.Lines, state+" — "+v.Name)

		row = append(row, entities.Control{
			ID:    ControlID(v.ID),
			Label: utils.BrandLabel(v.Name),
			Free:  v.Free,
		})
		if len(row) == controlsPerRow {
			view.Rows = append(view.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		view.Rows = append(view.Rows, row)
	}
	return view
}
