package model

// GroupMembership records one selected group a person belongs to,
// with the role the group reported for them.
type GroupMembership struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PositionMembership records one selected volunteer position a person
// is rostered for.
type PositionMembership struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// Person is one aggregated output record. Memberships accumulate while
// the engine merges the selected sources; the same group or position is
// never appended twice.
type Person struct {
	ID            string               `json:"id"`
	Firstname     string               `json:"firstname"`
	PreferredName string               `json:"preferred_name"`
	Lastname      string               `json:"lastname"`
	Email         string               `json:"email"`
	Groups        []GroupMembership    `json:"groups"`
	Positions     []PositionMembership `json:"service_positions"`
}

// DisplayName prefers the preferred name over the first name, with the
// last name appended.
func (p *Person) DisplayName() string {
	first := p.PreferredName
	if first == "" {
		first = p.Firstname
	}
	if first == "" {
		return p.Lastname
	}
	if p.Lastname == "" {
		return first
	}
	return first + " " + p.Lastname
}

// HasGroup reports whether a group membership with the given ID has
// already been recorded.
func (p *Person) HasGroup(id string) bool {
	for _, g := range p.Groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

// HasPosition reports whether a position membership with the given ID
// has already been recorded.
func (p *Person) HasPosition(id string) bool {
	for _, sp := range p.Positions {
		if sp.ID == id {
			return true
		}
	}
	return false
}
