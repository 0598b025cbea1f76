package menu

import (
	"encoding/json"
	"fmt"

	"tcs/internal/model"
)

// Kind is what happens when an item is activated.
type Kind int

const (
	KindRun     Kind = iota + 1 // Launch the item's commands
	KindSubmenu                 // Show Target
	KindBack                    // Show the parent of the owning menu
	KindQuit                    // Leave the launcher
)

func (k Kind) String() string {
	switch k {
	case KindRun:
		return "run"
	case KindSubmenu:
		return "submenu"
	case KindBack:
		return "back"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind written by MarshalJSON.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, c := range []Kind{KindRun, KindSubmenu, KindBack, KindQuit} {
		if c.String() == name {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown item kind %q", name)
}

// Icon returns the button icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindSubmenu:
		return model.IconSubmenu
	case KindBack:
		return model.IconBack
	case KindQuit:
		return model.IconQuit
	default:
		return model.IconRun
	}
}

// BackLabel is the name shown on every BACK item.
const BackLabel = "Back"

// Item is one on-screen button.
type Item struct {
	// Name is the button label.
	Name string

	// Kind selects the activation behavior.
	Kind Kind

	// Menu is the menu the item belongs to.
	Menu *Menu

	// Target is the menu shown by KindSubmenu and KindBack items.
	Target *Menu

	// Launch holds the commands of a KindRun item.
	Launch model.Launch
}

func (i *Item) String() string {
	return "[Item] " + i.Name + ": " + i.Kind.String()
}
