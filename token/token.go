// Package token is the boundary between the converters and a host format.
//
// A converter only ever sees one value at a time: it asks a Reader what kind of
// token sits at the current position and writes exactly one scalar to a Writer.
package token

// Kind classifies the token at the current read position
type Kind int

const (
	Null Kind = iota
	String
	Integer
	Float
	Boolean
	StartArray
	StartObject
	Other
)

var kindNames = [...]string{
	Null:        "Null",
	String:      "String",
	Integer:     "Integer",
	Float:       "Float",
	Boolean:     "Boolean",
	StartArray:  "StartArray",
	StartObject: "StartObject",
	Other:       "Other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Other"
	}
	return kindNames[k]
}

// Writer receives one scalar token
type Writer interface {
	WriteNull() error
	WriteString(s string) error
	WriteInt(i int64) error
	WriteUint(u uint64) error
}

// Reader exposes the token at the current position.
// Value returns a string for String, int64 or uint64 for Integer, float64 for Float, bool for Boolean and nil otherwise.
type Reader interface {
	Kind() Kind
	Value() any
}

// Value is an in-memory token, usable as a Reader
type Value struct {
	K Kind
	V any
}

// Kind implements Reader
func (v Value) Kind() Kind {
	return v.K
}

// Value implements Reader
func (v Value) Value() any {
	return v.V
}

// Recorder is a Writer that keeps the last token written
type Recorder struct {
	Token Value
	Count int
}

func (r *Recorder) WriteNull() error {
	return r.set(Value{K: Null})
}

func (r *Recorder) WriteString(s string) error {
	return r.set(Value{K: String, V: s})
}

func (r *Recorder) WriteInt(i int64) error {
	return r.set(Value{K: Integer, V: i})
}

func (r *Recorder) WriteUint(u uint64) error {
	return r.set(Value{K: Integer, V: u})
}

func (r *Recorder) set(v Value) error {
	r.Token = v
	r.Count++
	return nil
}
