package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

type templateKey struct {
	name, value string
}

type templateSection struct {
	name    string
	comment string
	keys    []templateKey
}

func templateSections(cwd string) []templateSection {
	return []templateSection{
		{
			name:    GlobalSection,
			comment: "Launcher settings",
			keys: []templateKey{
				{KeyBackgroundImage, filepath.Join(cwd, "images", "default_background.jpg")},
			},
		},
		{
			name: "Gnome Terminal",
			keys: []templateKey{{KeyCommand, "gnome-terminal"}},
		},
		{
			name:    "Example of three commands in a directory",
			comment: "pre_command and post_command run before and after command",
			keys: []templateKey{
				{KeyDirectory, "/home/foo/bar"},
				{KeyPreCommand, "command 1"},
				{KeyCommand, "command 2"},
				{KeyPostCommand, "command 3"},
			},
		},
		{
			name: "Quit",
			keys: []templateKey{{KeyCommand, "quit"}},
		},
	}
}

// Template builds the starter configuration written by --init.
// cwd is used to locate the default background image.
func Template(cwd string) (*ini.File, error) {
	file := ini.Empty()
	for _, ts := range templateSections(cwd) {
		sec, err := file.NewSection(ts.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add section %s: %w", ts.name, err)
		}
		sec.Comment = ts.comment
		for _, k := range ts.keys {
			if _, err := sec.NewKey(k.name, k.value); err != nil {
				return nil, fmt.Errorf("failed to add key %s.%s: %w", ts.name, k.name, err)
			}
		}
	}
	return file, nil
}

// WriteTemplate writes the starter configuration to path. It refuses to
// overwrite an existing file and returns an error wrapping ErrExists.
func WriteTemplate(path, cwd string) error {
	file, err := Template(cwd)
	if err != nil {
		return err
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s, please remove it or use a different file to initialize", ErrExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := file.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("config template written")
	return nil
}
