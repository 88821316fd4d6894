package sqlmapper

import (
	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

// Query identifies the statement of a Request: inline SQL text or the name
// of a registered statement. The zero Query identifies nothing.
type Query struct {
	text  string
	name  string
	named bool
}

// SQL returns an inline statement.
func SQL(text string) Query { return Query{text: text} }

// Named returns a reference to a registered statement.
func Named(name string) Query { return Query{name: name, named: true} }

// IsNamed reports whether q refers to a registered statement.
func (q Query) IsNamed() bool { return q.named }

// IsZero reports whether q carries neither text nor a name.
func (q Query) IsZero() bool { return q.text == "" && q.name == "" }

func (q Query) String() string {
	if q.named {
		return q.name
	}
	return q.text
}

// Request describes one fetch.
type Request struct {
	Query Query

	// Params are substituted into the statement's ? placeholders. Nil means
	// no substitution. A slice or array (other than []byte) is an ordered
	// parameter list; any other value is a single parameter.
	Params any

	// Shape overrides every other shape source when set.
	Shape shape.Shape
}
