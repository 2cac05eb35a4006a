// Package feature holds the registry of selectable modules and the resolver
// that decides which of them are usable on the current host.
//
// Modules are registered once at startup into a [Registry], which is then
// sealed. [Resolve] is a pure function of a [platform.Environment] and a
// Registry; it never touches the host, so every eligibility decision can be
// tested with synthetic environments.
package feature

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zenik/zenik/internal/platform"
)

// Category groups modules in the menu.
type Category int

const (
	CategoryTools Category = iota + 1
	CategoryGaming
	CategorySystem
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryTools, CategoryGaming, CategorySystem}

var categoryNames = map[Category]string{
	CategoryTools:  "TOOLS",
	CategoryGaming: "GAMING",
	CategorySystem: "SYSTEM",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Title returns the heading shown above the category, e.g. "Tools".
func (c Category) Title() string {
	return cases.Title(language.English).String(strings.ToLower(c.String()))
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory maps a case-insensitive category name to its Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Handler runs a module. A nil error means success; an error wrapping
// [ErrCancelled] means the user backed out; anything else is a failure.
type Handler func() error

// Module is one selectable tool.
type Module struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Eligible    Predicate
	Run         Handler
}

// ErrCancelled is returned by handlers when the user aborts.
var ErrCancelled = errors.New("cancelled by user")

// Status is the completion status of one invocation.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// StatusOf maps a handler's return value to its Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrCancelled):
		return StatusCancelled
	default:
		return StatusFailure
	}
}

// validate checks the fields every registered module must carry.
func (m Module) validate() error {
	switch {
	case strings.TrimSpace(m.ID) == "":
		return errors.New("empty identifier")
	case strings.ContainsAny(m.ID, " \t\n"):
		return fmt.Errorf("identifier %q contains whitespace", m.ID)
	case m.Name == "":
		return errors.New("empty display name")
	case !m.Category.Valid():
		return fmt.Errorf("invalid category %v", m.Category)
	case m.Eligible == nil:
		return errors.New("nil eligibility predicate")
	case m.Run == nil:
		return errors.New("nil handler")
	}
	return nil
}

// eligibleIn evaluates the module's predicate.
func (m Module) eligibleIn(env platform.Environment) bool {
	return m.Eligible(env)
}
