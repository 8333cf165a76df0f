package entities

// Option is one entry of a dropdown list in rendered order. Index 0 is
// the non-selectable placeholder ("select one"); real options start at
// index 1. Options are read fresh on every dropdown open and never
// cached, since the remote list depends on the parent selection.
type Option struct {
	Index int
	Text  string
}
