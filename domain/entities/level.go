package entities

// Level identifies one of the five ordered selection fields on the
// consultation form. The option list of each level is regenerated by
// the remote form whenever the selection at the previous level changes,
// so levels must always be chosen shallow to deep.
type Level int

const (
	Department Level = iota
	City
	Entity
	Specialty
	Office
)

var levelListIDs = [...]string{"list-83", "list-89", "list-95", "list-101", "list-107"}

var levelNames = [...]string{"department", "city", "entity", "specialty", "office"}

// ListID returns the DOM id of the option list backing this level.
func (l Level) ListID() string {
	return levelListIDs[l]
}

// Name returns the key used for this level in emitted search params.
func (l Level) Name() string {
	return levelNames[l]
}

func (l Level) Prev() Level {
	return l - 1
}

func (l Level) Next() Level {
	return l + 1
}

// Levels returns every level, shallow to deep.
func Levels() []Level {
	return []Level{Department, City, Entity, Specialty, Office}
}
