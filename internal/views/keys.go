package views

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Activate key.Binding
	Clear    key.Binding
	Left     key.Binding
	Right    key.Binding
	Update   key.Binding
	Delete   key.Binding
	Page     key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("enter/ctrl+s", "add contact"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear form"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next"),
		),
		Update: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update with form"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Page: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// bindingsFor returns the help line for the focused region.
func (k keyMap) bindingsFor(area focusArea) []key.Binding {
	common := []key.Binding{k.Next, k.Reload, k.Quit}
	switch {
	case area.isField():
		return append([]key.Binding{k.Submit, k.Clear}, common...)
	case area == focusSubmit, area == focusSort:
		return append([]key.Binding{k.Activate, k.Page}, common...)
	case area == focusCards:
		return append([]key.Binding{k.Left, k.Right, k.Update, k.Delete, k.Page}, common...)
	case area == focusPages:
		return append([]key.Binding{k.Left, k.Right, k.Activate, k.Page}, common...)
	default:
		return common
	}
}
