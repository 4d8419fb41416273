package legis

import (
	"fmt"

	"github.com/agentstation/utc"
)

// Role is one dated position held by a person: a chamber seat with a
// start and end date. Bills record the role the sponsor or cosponsor
// held at the relevant date.
type Role struct {
	Type      string   `yaml:"type"` // "representative" or "senator"
	State     string   `yaml:"state,omitempty"`
	District  int      `yaml:"district,omitempty"`
	StartDate utc.Time `yaml:"start_date"`
	EndDate   utc.Time `yaml:"end_date"`
}

// Covers reports whether the role was held at the given date. Start and
// end dates are inclusive.
func (r *Role) Covers(date utc.Time) bool {
	if date.Before(r.StartDate) {
		return false
	}
	if !r.EndDate.IsZero() && date.After(r.EndDate) {
		return false
	}
	return true
}

// Person is a reference entity: a legislator identified by a stable
// numeric ID. People are externally managed; the core only reads them.
type Person struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Roles []Role `yaml:"roles,omitempty"`
}

// RoleAt returns the role the person held at the given date, or nil if
// none of their roles cover it.
func (p *Person) RoleAt(date utc.Time) *Role {
	for i := range p.Roles {
		if p.Roles[i].Covers(date) {
			return &p.Roles[i]
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (p *Person) String() string {
	return fmt.Sprintf("person %d (%s)", p.ID, p.Name)
}
