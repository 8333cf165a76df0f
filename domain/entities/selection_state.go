package entities

const unset = -1

// SelectionState records which option is currently chosen at each
// level. Invariant: a level may only hold a selection while every
// shallower level holds one too. ResetFrom keeps that invariant by
// always clearing a full suffix of the chain in one step.
type SelectionState struct {
	texts   [5]string
	indexes [5]int
}

// NewSelectionState creates an empty state with no level chosen.
func NewSelectionState() *SelectionState {
	s := &SelectionState{}
	for i := range s.indexes {
		s.indexes[i] = unset
	}
	return s
}

// Select records the chosen option for level. The caller is responsible
// for only selecting a level whose ancestors are already chosen.
func (s *SelectionState) Select(level Level, index int, text string) {
	s.indexes[level] = index
	s.texts[level] = text
}

// ResetFrom clears level and every deeper level, preserving shallower
// selections.
func (s *SelectionState) ResetFrom(level Level) {
	for l := level; l <= Office; l++ {
		s.indexes[l] = unset
		s.texts[l] = ""
	}
}

// Chosen reports whether level currently holds a selection.
func (s *SelectionState) Chosen(level Level) bool {
	return s.indexes[level] != unset
}

// Index returns the chosen index at level, or def when nothing is
// chosen there.
func (s *SelectionState) Index(level Level, def int) int {
	if s.indexes[level] == unset {
		return def
	}
	return s.indexes[level]
}

// Text returns the chosen display text at level, empty when unchosen.
func (s *SelectionState) Text(level Level) string {
	return s.texts[level]
}

// Params snapshots the chosen text of every level keyed by level name.
// The snapshot is independent of later mutations, so it can be embedded
// verbatim into a result record.
func (s *SelectionState) Params() map[string]string {
	params := make(map[string]string, len(s.texts))
	for _, l := range Levels() {
		params[l.Name()] = s.texts[l]
	}
	return params
}
