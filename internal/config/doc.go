// Package config loads vied's TOML configuration: editor scroll-off and
// tab-width settings, a keymap table override for internal/resolver, the
// session-restore flag, and AI-assist settings. Three optional layers are
// merged in ascending priority — built-in defaults, user config, project
// config — each layer only overriding the fields it actually sets.
package config
