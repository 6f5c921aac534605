// Package config resolves the project root and loads layered settings for the
// asset pipeline: built-in defaults, then the project's .stationkit.yaml, then
// STATIONKIT_* environment variables (optionally seeded from a project .env).
// All relative paths in the settings are resolved against the project root.
package config
