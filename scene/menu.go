package scene

// Menu is the overlay shown when an activation sequence completes
// It is a pure model; the render package draws it
type Menu struct {
	Title   string
	Entries []string
	visible bool
}

// NewMenu creates a hidden menu
func NewMenu(title string, entries ...string) *Menu {
	return &Menu{Title: title, Entries: entries}
}

// Show makes the menu visible
func (m *Menu) Show() { m.visible = true }

// Hide removes the menu
func (m *Menu) Hide() { m.visible = false }

// Visible reports whether the menu is shown
func (m *Menu) Visible() bool { return m.visible }
