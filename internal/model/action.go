package model

import "strings"

// QuitCommand is the command value that turns an action into a quit button.
const QuitCommand = "quit"

// RecordKind classifies a raw action record.
type RecordKind int

const (
	RecordRun       RecordKind = iota // Launches pre/main/post commands
	RecordQuit                        // command = quit
	RecordContainer                   // No command, only declares a submenu
)

func (k RecordKind) String() string {
	switch k {
	case RecordRun:
		return "run"
	case RecordQuit:
		return "quit"
	case RecordContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Launch holds the commands run by a single button press, in order
// PreCommand, Command, PostCommand, all inside Directory.
type Launch struct {
	Directory   string `json:"directory,omitempty"`
	PreCommand  string `json:"pre_command,omitempty"`
	Command     string `json:"command,omitempty"`
	PostCommand string `json:"post_command,omitempty"`
}

// ActionRecord is one configuration section before it is placed into the
// menu tree.
type ActionRecord struct {
	Name        string // Section name, optionally dotted ("Games.Pacman")
	Directory   string
	PreCommand  string
	Command     string
	PostCommand string
	Submenu     string // Explicit menu path, only meaningful when HasSubmenu
	HasSubmenu  bool
}

// Kind derives the record kind from its command.
func (r ActionRecord) Kind() RecordKind {
	switch strings.TrimSpace(r.Command) {
	case "":
		return RecordContainer
	case QuitCommand:
		return RecordQuit
	default:
		return RecordRun
	}
}

// MenuPath is the path of the menu the record's button belongs to: the
// explicit submenu when set, otherwise the dotted prefix of the name.
func (r ActionRecord) MenuPath() string {
	if r.HasSubmenu {
		return r.Submenu
	}
	parent, _ := SplitPath(r.Name)
	return parent
}

// Leaf is the button label: the last segment of the record name.
func (r ActionRecord) Leaf() string {
	return Leaf(r.Name)
}

// Launch returns the commands this record runs.
func (r ActionRecord) Launch() Launch {
	return Launch{
		Directory:   r.Directory,
		PreCommand:  r.PreCommand,
		Command:     r.Command,
		PostCommand: r.PostCommand,
	}
}
