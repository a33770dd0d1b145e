package model

// Property is a named predicate source of the form `prop_X candidate ... =
// boolean`. The predicate's concrete syntax is a matter for the compiler
// oracle and the check builder; this package only carries it as opaque
// text.
type Property struct {
	Name   string
	Source string
}

// Binding is an auxiliary name visible to both the program and its
// properties (the problem's typing context).
type Binding struct {
	Name string
	Type string
	Expr Expression
}

// Problem is the record a problem loader produces: a program with exactly
// one designated repair site, its declared type, an ordered list of
// properties, and an ordered context of auxiliary bindings.
type Problem struct {
	Program    Expression
	Type       string
	Properties []Property
	Context    []Binding
	RepairSite SourceSpan
}

// PropertyNames returns the ordered property names, used to build cache
// keys and check-source templates.
func (p Problem) PropertyNames() []string {
	names := make([]string, len(p.Properties))
	for i, prop := range p.Properties {
		names[i] = prop.Name
	}

	return names
}
