// Package metadata caches the display-name table derived for each enum type.
//
// A table is built the first time a type is requested and kept for the life of
// the Cache; enum declarations do not change once a process is running.
package metadata

import (
	"reflect"
	"slices"
	"strings"

	"github.com/KOMKZ/go-yogan-codec/enum"
)

// DuplicatePolicy decides what happens when two members of a type end up with the same display name
type DuplicatePolicy string

const (
	// DuplicateReject fails the build with ErrDuplicateName
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateLastWins lets the later member take over the name, keeping the name's first position
	DuplicateLastWins DuplicatePolicy = "last_wins"
)

// ParseDuplicatePolicy parses a configured policy; empty means DuplicateReject
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case "", DuplicateReject:
		return DuplicateReject, nil
	case DuplicateLastWins:
		return DuplicateLastWins, nil
	default:
		return "", ErrUnknownPolicy.WithData("policy", s)
	}
}

// AliasSource resolves the custom name of a member; *enum.Registry implements it
type AliasSource interface {
	AliasOf(rt reflect.Type, member string) (string, bool)
}

// Entry maps one display name to the member it stands for
type Entry struct {
	Name   string
	Member enum.Member
}

// TypeMetadata ordered display-name table of one enum type.
// Immutable after construction, safe for concurrent reads.
type TypeMetadata struct {
	typ      *enum.Type
	entries  []Entry
	byName   map[string]int // display name -> entry position
	byMember map[string]int // declared member name -> entry position
}

// Build derives the table for typ: each member contributes its custom name if it has one,
// otherwise its declared name, in declaration order.
func Build(typ *enum.Type, aliases AliasSource, policy DuplicatePolicy) (*TypeMetadata, error) {
	members := typ.Members()
	md := &TypeMetadata{
		typ:      typ,
		entries:  make([]Entry, 0, len(members)),
		byName:   make(map[string]int, len(members)),
		byMember: make(map[string]int, len(members)),
	}

	for _, m := range members {
		name := m.Name
		if alias, ok := aliases.AliasOf(typ.ReflectType(), m.Name); ok {
			name = alias
		}

		pos, dup := md.byName[name]
		if !dup {
			md.byName[name] = len(md.entries)
			md.byMember[m.Name] = len(md.entries)
			md.entries = append(md.entries, Entry{Name: name, Member: m})
			continue
		}

		if policy != DuplicateLastWins {
			return nil, ErrDuplicateName.
				WithData("type", typ.Name()).
				WithData("name", name).
				WithData("members", md.entries[pos].Member.Name+","+m.Name)
		}
		delete(md.byMember, md.entries[pos].Member.Name)
		md.entries[pos].Member = m
		md.byMember[m.Name] = pos
	}
	return md, nil
}

// Type returns the enum declaration the table was built from
func (m *TypeMetadata) Type() *enum.Type {
	return m.typ
}

// Len number of display names
func (m *TypeMetadata) Len() int {
	return len(m.entries)
}

// Entries returns the table in order
func (m *TypeMetadata) Entries() []Entry {
	return slices.Clone(m.entries)
}

// Lookup finds an entry by exact display name
func (m *TypeMetadata) Lookup(name string) (Entry, bool) {
	pos, ok := m.byName[name]
	if !ok {
		return Entry{}, false
	}
	return m.entries[pos], true
}

// Match finds the first entry, in declaration order, whose display name equals name ignoring case
func (m *TypeMetadata) Match(name string) (Entry, bool) {
	for _, e := range m.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// DisplayName returns the display name a declared member is written as
func (m *TypeMetadata) DisplayName(member string) (string, bool) {
	pos, ok := m.byMember[member]
	if !ok {
		return "", false
	}
	return m.entries[pos].Name, true
}
