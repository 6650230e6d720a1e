package ui

// SelectItem is one fixed value/label dropdown entry for lists that never
// come from the backend, such as gender and entity status.
type SelectItem struct {
	Value string
	Label string
}
