package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"

	"tcs/internal/model"
)

// GlobalSection is the reserved section holding launcher-wide settings.
const GlobalSection = "TCS"

// DefaultFile is the config path used when none is given.
const DefaultFile = "tcs.conf"

// Recognized keys.
const (
	KeyBackgroundImage = "background_image"
	KeyTitle           = "title"
	KeyCommand         = "command"
	KeyDirectory       = "directory"
	KeyPreCommand      = "pre_command"
	KeyPostCommand     = "post_command"
	KeySubmenu         = "submenu"
)

var actionKeys = map[string]bool{
	KeyCommand:     true,
	KeyDirectory:   true,
	KeyPreCommand:  true,
	KeyPostCommand: true,
	KeySubmenu:     true,
}

// Global holds the settings of the TCS section.
type Global struct {
	BackgroundImage string // Consumed by the renderer only
	Title           string // Header text above the root menu
}

// Config is a parsed configuration file.
type Config struct {
	Path    string
	Global  Global
	Actions []model.ActionRecord // File order, TCS excluded
}

var loadOptions = ini.LoadOptions{
	InsensitiveKeys:         true,
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
}

// Load reads and parses the configuration file at path.
// A missing file is reported with an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	log.Info().Str("path", path).Int("actions", len(cfg.Actions)).Msg("config loaded")
	return cfg, nil
}

// Parse parses INI data into a Config. Every structural problem found is
// reported; the returned error joins one *ConfigError per problem.
func Parse(data []byte) (*Config, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("invalid config syntax: %v", err)}
	}

	cfg := &Config{}
	var errs []error

	defaults := file.Section(ini.DefaultSection).KeysHash()

	global, err := file.GetSection(GlobalSection)
	if err != nil {
		errs = append(errs, &ConfigError{Msg: fmt.Sprintf("missing [%s] section", GlobalSection)})
	} else {
		g, globalErrs := parseGlobal(ownKeys(global, defaults))
		cfg.Global = g
		errs = append(errs, globalErrs...)
	}

	for _, sec := range file.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection || name == GlobalSection {
			continue
		}
		rec, secErrs := parseAction(name, ownKeys(sec, defaults))
		if len(secErrs) > 0 {
			errs = append(errs, secErrs...)
			continue
		}
		cfg.Actions = append(cfg.Actions, rec)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func parseGlobal(values map[string]string) (Global, []error) {
	get, errs := sectionGetter(GlobalSection, values)
	g := Global{
		BackgroundImage: model.ExpandHome(get(KeyBackgroundImage)),
		Title:           get(KeyTitle),
	}
	if g.BackgroundImage != "" && !model.FileExists(g.BackgroundImage) {
		log.Warn().Str("path", g.BackgroundImage).Msg("background image not found")
	}
	return g, *errs
}

// sectionGetter returns a lookup of trimmed, interpolated values. Failed
// lookups yield "" and are collected in the returned slice.
func sectionGetter(section string, values map[string]string) (func(key string) string, *[]error) {
	var errs []error
	get := func(key string) string {
		raw, ok := values[key]
		if !ok {
			return ""
		}
		v, err := interpolate(raw, values)
		if err != nil {
			errs = append(errs, &ConfigError{Section: section, Key: key, Msg: err.Error()})
			return ""
		}
		return strings.TrimSpace(v)
	}
	return get, &errs
}

// ownKeys returns the keys defined directly in sec plus inherited DEFAULT
// keys. ini.v1 would otherwise resolve missing keys of "Games.Pacman" from a
// "Games" section, which is not how menu placement works.
func ownKeys(sec *ini.Section, defaults map[string]string) map[string]string {
	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	for _, k := range sec.Keys() {
		values[k.Name()] = k.Value()
	}
	return values
}

func parseAction(name string, values map[string]string) (model.ActionRecord, []error) {
	get, errs := sectionGetter(name, values)
	fail := func(key, format string, args ...any) {
		*errs = append(*errs, &ConfigError{Section: name, Key: key, Msg: fmt.Sprintf(format, args...)})
	}

	if err := model.ValidatePath(name); err != nil {
		fail("", "invalid section name: %v", err)
	}

	for k := range values {
		if !actionKeys[k] {
			log.Warn().Str("section", name).Str("key", k).Msg("ignoring unknown key")
		}
	}

	rec := model.ActionRecord{
		Name:        name,
		Directory:   model.ExpandHome(get(KeyDirectory)),
		PreCommand:  get(KeyPreCommand),
		Command:     get(KeyCommand),
		PostCommand: get(KeyPostCommand),
	}
	if _, ok := values[KeySubmenu]; ok {
		rec.Submenu = get(KeySubmenu)
		rec.HasSubmenu = true
		if err := model.ValidatePath(rec.Submenu); err != nil {
			fail(KeySubmenu, "%v", err)
		}
	}

	launchKeys := map[string]string{
		KeyDirectory:   rec.Directory,
		KeyPreCommand:  rec.PreCommand,
		KeyPostCommand: rec.PostCommand,
	}
	for _, k := range []string{KeyDirectory, KeyPreCommand, KeyPostCommand} {
		if launchKeys[k] == "" {
			continue
		}
		switch rec.Kind() {
		case model.RecordContainer:
			fail(k, "requires %q to be set", KeyCommand)
		case model.RecordQuit:
			fail(k, "not allowed on a %q action", model.QuitCommand)
		}
	}

	return rec, *errs
}
