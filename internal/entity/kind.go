package entity

import (
	"fmt"
	"strings"
)

// Kind describes one entity type and where its pieces live.
type Kind struct {
	// Name is the singular kind name, also used in messages ("agent", "command").
	Name string

	// Section is the top-level key in opencode.json.
	Section string

	// BodyField is the field stored as the markdown body.
	BodyField string

	// Scoped kinds have project and user markdown locations.
	Scoped bool

	// DisableWhenMissing makes Delete write {disable: true} instead of
	// failing when the entity exists nowhere on disk.
	DisableWhenMissing bool
}

var (
	Agent = Kind{
		Name:               "agent",
		Section:            "agent",
		BodyField:          "prompt",
		DisableWhenMissing: true,
	}

	Command = Kind{
		Name:      "command",
		Section:   "command",
		BodyField: "template",
		Scoped:    true,
	}
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{Agent, Command}
}

// ParseKind looks up a kind by name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(strings.TrimSpace(name), k.Name) {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("unknown kind %q (want agent or command)", name)
}

func (k Kind) String() string { return k.Name }
