package menu

import "tcs/internal/model"

// Menu is an ordered collection of items. Every menu except the root
// starts with a BACK item pointing to Parent.
type Menu struct {
	// Path is the dotted path of the menu, "" for root.
	Path string

	// Parent is nil for the root menu.
	Parent *Menu

	// Items in display order.
	Items []*Item
}

// IsRoot reports whether m is the top-level menu.
func (m *Menu) IsRoot() bool {
	return m.Parent == nil
}

// Name returns the last segment of the menu path.
func (m *Menu) Name() string {
	return model.Leaf(m.Path)
}

// Back returns the menu's BACK item, or nil for the root.
func (m *Menu) Back() *Item {
	for _, it := range m.Items {
		if it.Kind == KindBack {
			return it
		}
	}
	return nil
}

// Submenu returns the ENTER_SUBMENU item leading to the child named leaf.
func (m *Menu) Submenu(leaf string) *Item {
	for _, it := range m.Items {
		if it.Kind == KindSubmenu && it.Name == leaf {
			return it
		}
	}
	return nil
}

// Find returns the first item with the given label and kind.
func (m *Menu) Find(name string, kind Kind) *Item {
	for _, it := range m.Items {
		if it.Name == name && it.Kind == kind {
			return it
		}
	}
	return nil
}

func (m *Menu) add(item *Item) *Item {
	item.Menu = m
	m.Items = append(m.Items, item)
	return item
}
