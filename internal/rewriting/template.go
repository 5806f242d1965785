package rewriting

import "strings"

// Template joins the user's own wording with a synthesized metric clause.
// Only the clause is generated; the prefix always comes from the input.
type Template struct {
	Prefix string
	Clause string
}

// Render returns "<prefix>, <clause>", or just the prefix when there is no clause
func (t Template) Render() string {
	prefix := strings.TrimRight(strings.TrimSpace(t.Prefix), ".,;: ")
	clause := strings.TrimSpace(t.Clause)
	switch {
	case clause == "":
		return prefix
	case prefix == "":
		return clause
	}
	return prefix + ", " + clause
}
