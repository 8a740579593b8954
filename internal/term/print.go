package term

import "strings"

// Canonical printing. The output round-trips through the parser:
// parsing String(t) yields a term structurally equal to t.
//
//	Atom     -> name
//	Compound -> name(arg1, arg2, ...)
//	Variable -> ?name

// String renders t in canonical form.
func String(t Term) string {
	var sb strings.Builder
	write(&sb, t)
	return sb.String()
}

func write(sb *strings.Builder, t Term) {
	switch tt := t.(type) {
	case Atom:
		sb.WriteString(tt.Name)
	case Variable:
		sb.WriteByte('?')
		sb.WriteString(tt.Name)
	case Compound:
		sb.WriteString(tt.Name)
		sb.WriteByte('(')
		for i, arg := range tt.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, arg)
		}
		sb.WriteByte(')')
	}
}

// String implements fmt.Stringer for each variant.
func (a Atom) String() string     { return String(a) }
func (v Variable) String() string { return String(v) }
func (c Compound) String() string { return String(c) }
