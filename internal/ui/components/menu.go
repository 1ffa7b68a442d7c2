package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one menu entry. Shortcut, when set, activates the item
// directly.
type MenuItem struct {
	Label    string
	Shortcut string
	Action   func() tea.Cmd
}

// Menu is a vertical list of actions that wraps around at the ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, it := range m.Items {
		labels[i] = it.Label
	}
	return labels
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	n := len(m.Items)
	if !ok || n == 0 {
		return m, nil
	}
	switch key := kmsg.String(); key {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected + n - 1) % n
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, it := range m.Items {
			if it.Shortcut != "" && it.Shortcut == key {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if act := m.Items[i].Action; act != nil {
		return act()
	}
	return nil
}

// View renders the menu as a column of buttons.
func (m Menu) View(compact bool) string {
	return ButtonColumn(m.Labels(), m.Selected, compact)
}
