package roulette

// RigState is an optional forced-outcome override for the next spin.
// When both a number and a color are set the number wins and the color
// only relabels the outcome; when only a color is set the wheel picks
// a random pocket of that color.
type RigState struct {
	Number *Pocket
	Color  *Color
	Active bool
}

// RigController holds the rig override for one table. Invalid targets
// are rejected when the rig is set, never at spin time, so every spin
// is guaranteed to produce a valid outcome.
type RigController struct {
	state RigState
}

// Set arms the rig. Either argument may be nil; passing both nil
// clears the rig instead.
func (r *RigController) Set(number *Pocket, color *Color) error {
	if number != nil && !number.Valid() {
		return ErrInvalidRigNumber
	}
	if color != nil && !color.Valid() {
		return ErrInvalidRigColor
	}
	if number == nil && color == nil {
		r.Clear()
		return nil
	}
	r.state = RigState{Number: number, Color: color, Active: true}
	return nil
}

// Clear disarms the rig.
func (r *RigController) Clear() {
	r.state = RigState{}
}

// IsActive reports whether a rig is armed.
func (r *RigController) IsActive() bool {
	return r.state.Active
}

// State returns a copy of the current rig state.
func (r *RigController) State() RigState {
	return r.state
}
