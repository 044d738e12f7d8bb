package marquee

// RegionState is the visible state of one region at a point in time.
type RegionState struct {
	Name    string  `json:"name" yaml:"name"`
	Role    string  `json:"role" yaml:"role"`
	Alpha   float64 `json:"alpha" yaml:"alpha"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
	Scale   float64 `json:"scale" yaml:"scale"`
	Width   float64 `json:"width" yaml:"width"`
	Value   float64 `json:"value" yaml:"value"`
	Text    string  `json:"text,omitempty" yaml:"text,omitempty"`
	Entered bool    `json:"entered,omitempty" yaml:"entered,omitempty"`
}

// Snapshot captures root and its descendants in document order.
func Snapshot(root *Region) []RegionState {
	var out []RegionState
	root.Walk(func(r *Region) bool {
		out = append(out, RegionState{
			Name:    r.Name,
			Role:    r.Role.String(),
			Alpha:   r.Alpha,
			OffsetY: r.OffsetY,
			Scale:   r.Scale,
			Width:   r.Width,
			Value:   r.Value,
			Text:    r.Text,
			Entered: r.entered,
		})
		return true
	})
	return out
}

// FindState returns the state named name, if present.
func FindState(states []RegionState, name string) (RegionState, bool) {
	for _, s := range states {
		if s.Name == name {
			return s, true
		}
	}
	return RegionState{}, false
}
