package legis

// Committee is a reference entity: a congressional committee identified
// by its committee code. Committees are externally managed; the core
// only resolves bills against them.
type Committee struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}
