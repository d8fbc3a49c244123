// Package acme is a small package used to exercise the introspector.
package acme

import "fmt"

// Greeter says things.
type Greeter interface {
	fmt.Stringer

	// Greet greets name.
	//
	// @param string $name who to greet
	// @return string the greeting
	Greet(name string) string
}

// Level is a priority.
type Level int

// Known levels.
const (
	// Low is the lowest level.
	Low Level = iota
	High
)

// Acme greets people.
//
// It keeps a count.
type Acme struct {
	Base
	// Name is the display name.
	Name  string `json:"name"`
	Count int    `json:"-"` // Count of greetings.

	secret string
}

// NewAcme builds an Acme.
func NewAcme(name string) *Acme { return &Acme{Name: name} }

// Greet greets name.
func (a *Acme) Greet(name string) string {
	a.Count++
	return "hi " + name + a.secret
}

func (a *Acme) String() string { return a.Name }

// Sum adds values to base.
func (a Acme) Sum(base int, values ...int) (total int, err error) {
	total = base
	for _, v := range values {
		total += v
	}
	return total, nil
}

// Base is embedded into Acme.
type Base struct {
	ID int
}

// Special is a Level with a name.
type Special Level

// Old is kept for compatibility.
//
// Deprecated: use Acme.
type Old struct {
	X int
}

type hidden struct {
	Y int
}
