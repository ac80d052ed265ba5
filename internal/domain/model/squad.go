package model

import "strings"

// DisplaySeparator joins descriptor tokens in persisted and displayed form.
const DisplaySeparator = " | "

// Descriptor is the pair of qualities a customer asked for at one position.
type Descriptor struct {
	First  string
	Second string
}

// Query returns the form fed to the vectorizer ("a|b").
func (d Descriptor) Query() string {
	return d.First + AttributeSeparator + d.Second
}

// String returns the persisted form ("a | b").
func (d Descriptor) String() string {
	return d.First + DisplaySeparator + d.Second
}

// ParseDescriptor reads the persisted form back. Anything without the
// separator is kept whole in First.
func ParseDescriptor(s string) Descriptor {
	first, second, ok := strings.Cut(s, DisplaySeparator)
	if !ok {
		return Descriptor{First: s}
	}
	return Descriptor{First: first, Second: second}
}

// SquadSlot is one persisted squad row.
type SquadSlot struct {
	CustomerID string
	Position   Position
	PlayerName string
	Qualities  string
}

// Customer is an account in the customer database.
type Customer struct {
	ID    string
	Name  string
	Email string
	PIN   string
}
