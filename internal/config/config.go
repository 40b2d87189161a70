package config

import (
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/hsaturn/vied/internal/fsys"
)

// exists reports whether path refers to a file fs can open.
func exists(fs fsys.FS, path string) bool {
	return path != "" && fs.Exists(path)
}

// Settings is vied's fully-resolved configuration, after the default,
// user and project layers have been merged.
type Settings struct {
	Editor  EditorSettings
	Keymap  string
	Session SessionSettings
	Assist  AssistSettings
}

// EditorSettings holds the [editor] table.
type EditorSettings struct {
	ScrollOff     int16
	SideScrollOff int16
	TabWidth      int16
}

// SessionSettings holds the [session] table.
type SessionSettings struct {
	Restore bool
}

// AssistSettings holds the [assist] table.
type AssistSettings struct {
	Enabled   bool
	Provider  string
	Model     string
	APIKeyEnv string
}

// Defaults returns the built-in configuration, the bottom layer every
// load starts from.
func Defaults() Settings {
	return Settings{
		Editor: EditorSettings{
			ScrollOff:     0,
			SideScrollOff: 0,
			TabWidth:      8,
		},
		Keymap: "",
		Session: SessionSettings{
			Restore: false,
		},
		Assist: AssistSettings{
			Enabled:   false,
			Provider:  "anthropic",
			Model:     "claude-3-5-sonnet-latest",
			APIKeyEnv: "ANTHROPIC_API_KEY",
		},
	}
}

// patch is one TOML file's contents, decoded with every field optional
// so that applying it only overrides what the file actually set.
type patch struct {
	Editor *struct {
		ScrollOff     *int16 `toml:"scrolloff"`
		SideScrollOff *int16 `toml:"sidescrolloff"`
		TabWidth      *int16 `toml:"tabwidth"`
	} `toml:"editor"`
	Keymap *string `toml:"keymap"`
	Session *struct {
		Restore *bool `toml:"restore"`
	} `toml:"session"`
	Assist *struct {
		Enabled   *bool   `toml:"enabled"`
		Provider  *string `toml:"provider"`
		Model     *string `toml:"model"`
		APIKeyEnv *string `toml:"api_key_env"`
	} `toml:"assist"`
}

// apply overlays p onto dst, field by field, leaving anything p didn't
// set untouched.
func apply(dst *Settings, p patch) {
	if p.Editor != nil {
		if p.Editor.ScrollOff != nil {
			dst.Editor.ScrollOff = *p.Editor.ScrollOff
		}
		if p.Editor.SideScrollOff != nil {
			dst.Editor.SideScrollOff = *p.Editor.SideScrollOff
		}
		if p.Editor.TabWidth != nil {
			dst.Editor.TabWidth = *p.Editor.TabWidth
		}
	}
	if p.Keymap != nil {
		dst.Keymap = *p.Keymap
	}
	if p.Session != nil && p.Session.Restore != nil {
		dst.Session.Restore = *p.Session.Restore
	}
	if p.Assist != nil {
		if p.Assist.Enabled != nil {
			dst.Assist.Enabled = *p.Assist.Enabled
		}
		if p.Assist.Provider != nil {
			dst.Assist.Provider = *p.Assist.Provider
		}
		if p.Assist.Model != nil {
			dst.Assist.Model = *p.Assist.Model
		}
		if p.Assist.APIKeyEnv != nil {
			dst.Assist.APIKeyEnv = *p.Assist.APIKeyEnv
		}
	}
}

// loadPatch reads and decodes one optional TOML file. A missing file is
// not an error: it simply contributes no overrides.
func loadPatch(fs fsys.FS, path string) (patch, error) {
	var p patch
	if !exists(fs, path) {
		return p, nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return p, &ParseError{Path: path, Err: err}
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, &ParseError{Path: path, Err: err}
	}
	return p, nil
}

// Load resolves Settings by overlaying the optional user and project
// TOML files, in that order, onto Defaults. Either path may be empty,
// meaning that layer is skipped.
func Load(fs fsys.FS, userPath, projectPath string) (Settings, error) {
	s := Defaults()

	userPatch, err := loadPatch(fs, userPath)
	if err != nil {
		return s, err
	}
	apply(&s, userPatch)

	projectPatch, err := loadPatch(fs, projectPath)
	if err != nil {
		return s, err
	}
	apply(&s, projectPatch)

	return s, nil
}
