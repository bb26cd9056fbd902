package trainer

// Selection is the configuration draft narrowed position → action →
// stack depth. Changing an earlier stage cascades away everything that
// depended on it, mirroring the dependent selector controls.
type Selection struct {
	position   string
	action     string
	stackDepth string
}

// SetPosition chooses a position, resetting action and stack depth.
func (s *Selection) SetPosition(position string) {
	s.position = position
	s.action = ""
	s.stackDepth = ""
}

// SetAction chooses a facing action, resetting stack depth. Ignored
// while no position is chosen.
func (s *Selection) SetAction(action string) {
	if s.position == "" {
		return
	}
	s.action = action
	s.stackDepth = ""
}

// SetStackDepth chooses a stack depth. Ignored until position and action
// are both chosen.
func (s *Selection) SetStackDepth(depth string) {
	if s.position == "" || s.action == "" {
		return
	}
	s.stackDepth = depth
}

// Reset clears the whole draft.
func (s *Selection) Reset() {
	s.position = ""
	s.action = ""
	s.stackDepth = ""
}

// Position returns the chosen position, if any.
func (s *Selection) Position() string { return s.position }

// Action returns the chosen facing action, if any.
func (s *Selection) Action() string { return s.action }

// StackDepth returns the chosen stack depth, if any.
func (s *Selection) StackDepth() string { return s.stackDepth }

// Resolved reports whether all three stages are chosen.
func (s *Selection) Resolved() bool {
	return s.position != "" && s.action != "" && s.stackDepth != ""
}

// Scenario converts the draft into a Scenario. Only meaningful when
// Resolved.
func (s *Selection) Scenario() Scenario {
	return Scenario{
		Position:   s.position,
		Action:     s.action,
		StackDepth: s.stackDepth,
	}
}
