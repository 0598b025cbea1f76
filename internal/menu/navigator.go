package menu

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"tcs/internal/model"
)

// Runner executes the commands of a RUN item. It blocks until every
// command has finished and reports commands that could not be started.
type Runner interface {
	Run(name string, launch model.Launch) error
}

// Navigator holds the currently displayed menu. It is the only mutable
// navigation state and is driven by one input loop.
type Navigator struct {
	tree     *Tree
	current  *Menu
	runner   Runner
	quitting bool
}

// NewNavigator starts at the root menu of tree.
func NewNavigator(tree *Tree, runner Runner) *Navigator {
	return &Navigator{
		tree:    tree,
		current: tree.Root(),
		runner:  runner,
	}
}

// Tree returns the menu tree being navigated.
func (n *Navigator) Tree() *Tree {
	return n.tree
}

// Current returns the displayed menu.
func (n *Navigator) Current() *Menu {
	return n.current
}

// Items returns the items of the displayed menu.
func (n *Navigator) Items() []*Item {
	return n.current.Items
}

// Quitting reports whether a QUIT item has been activated.
func (n *Navigator) Quitting() bool {
	return n.quitting
}

// Enter shows the target of an ENTER_SUBMENU item.
func (n *Navigator) Enter(item *Item) error {
	if item.Kind != KindSubmenu || item.Target == nil {
		return fmt.Errorf("item %q is not a submenu", item.Name)
	}
	n.current = item.Target
	log.Debug().Str("menu", n.current.Path).Msg("entered submenu")
	return nil
}

// Back shows the parent of the displayed menu. At the root it does nothing.
func (n *Navigator) Back() {
	n.backFrom(n.current)
}

func (n *Navigator) backFrom(from *Menu) {
	if from.Parent == nil {
		log.Debug().Str("menu", from.Path).Msg("back requested from root menu, ignoring")
		return
	}
	n.current = from.Parent
	log.Debug().Str("menu", n.current.Path).Msg("returned to parent menu")
}

// Activate performs the item's action. RUN blocks until the item's commands
// finish; the returned error lists commands that could not be launched and
// never changes the navigation state. After QUIT, Activate does nothing.
func (n *Navigator) Activate(item *Item) error {
	if n.quitting {
		return nil
	}

	switch item.Kind {
	case KindSubmenu:
		return n.Enter(item)
	case KindBack:
		from := item.Menu
		if from == nil {
			from = n.current
		}
		n.backFrom(from)
		return nil
	case KindQuit:
		log.Info().Str("item", item.Name).Msg("quit requested")
		n.quitting = true
		return nil
	case KindRun:
		if n.runner == nil {
			return fmt.Errorf("no runner configured for %q", item.Name)
		}
		log.Info().Str("item", item.Name).Str("menu", n.current.Path).Msg("running item")
		return n.runner.Run(item.Name, item.Launch)
	default:
		return fmt.Errorf("item %q has unknown kind %d", item.Name, item.Kind)
	}
}
