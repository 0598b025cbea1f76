package menu

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tcs/internal/model"
)

// Tree is the registry of menus keyed by dotted path. It is built once at
// startup and read-only afterwards.
type Tree struct {
	root  *Menu
	menus map[string]*Menu
	order []*Menu
}

// NewTree creates a tree holding only the empty root menu.
func NewTree() *Tree {
	root := &Menu{Path: ""}
	return &Tree{
		root:  root,
		menus: map[string]*Menu{"": root},
		order: []*Menu{root},
	}
}

// Build creates a tree and loads records into it.
func Build(records []model.ActionRecord) (*Tree, error) {
	t := NewTree()
	if err := t.Load(records); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the top-level menu.
func (t *Tree) Root() *Menu {
	return t.root
}

// Menu looks up an existing menu.
func (t *Tree) Menu(path string) (*Menu, bool) {
	m, ok := t.menus[path]
	return m, ok
}

// Menus returns all menus in creation order, root first.
func (t *Tree) Menus() []*Menu {
	out := make([]*Menu, len(t.order))
	copy(out, t.order)
	return out
}

// GetOrCreateMenu returns the menu for path, creating it and any missing
// ancestors. A new menu gets an ENTER_SUBMENU item appended to its parent
// and a BACK item as its own first item. Repeated calls with the same path
// return the same *Menu.
func (t *Tree) GetOrCreateMenu(path string) *Menu {
	if m, ok := t.menus[path]; ok {
		return m
	}

	// Parent first: it must exist before the child's submenu item is appended.
	parentPath, leaf := model.SplitPath(path)
	parent := t.GetOrCreateMenu(parentPath)

	m := &Menu{Path: path, Parent: parent}
	parent.add(&Item{Name: leaf, Kind: KindSubmenu, Target: m})
	m.add(&Item{Name: BackLabel, Kind: KindBack, Target: parent})

	t.menus[path] = m
	t.order = append(t.order, m)
	log.Debug().Str("path", path).Str("parent", parentPath).Msg("menu created")
	return m
}

// Load places each record into the tree in order. Records with an invalid
// dotted name or submenu are skipped and reported in the returned error.
func (t *Tree) Load(records []model.ActionRecord) error {
	var errs []error
	for _, rec := range records {
		if err := t.add(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Tree) add(rec model.ActionRecord) error {
	if err := model.ValidatePath(rec.Name); err != nil {
		return fmt.Errorf("action %q: %w", rec.Name, err)
	}
	if rec.Name == "" {
		return errors.New("action with empty name")
	}
	menuPath := rec.MenuPath()
	if err := model.ValidatePath(menuPath); err != nil {
		return fmt.Errorf("action %q: %w", rec.Name, err)
	}

	switch rec.Kind() {
	case model.RecordContainer:
		t.GetOrCreateMenu(model.JoinPath(menuPath, rec.Leaf()))
	case model.RecordQuit:
		t.GetOrCreateMenu(menuPath).add(&Item{Name: rec.Leaf(), Kind: KindQuit})
	default:
		t.GetOrCreateMenu(menuPath).add(&Item{Name: rec.Leaf(), Kind: KindRun, Launch: rec.Launch()})
	}
	return nil
}

// Placement is a flattened button: the menu it sits in and its label.
type Placement struct {
	MenuPath string `json:"menu"`
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
}

// Flatten lists every RUN, QUIT and SUBMENU item of every menu, in menu
// creation order. BACK items are implied by the menu structure and omitted.
func (t *Tree) Flatten() []Placement {
	var out []Placement
	for _, m := range t.order {
		for _, it := range m.Items {
			if it.Kind == KindBack {
				continue
			}
			out = append(out, Placement{MenuPath: m.Path, Name: it.Name, Kind: it.Kind})
		}
	}
	return out
}
