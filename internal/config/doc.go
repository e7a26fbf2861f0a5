// Package config defines the YAML configuration model of the board, along with
// helpers to fetch config and seed documents from local paths or remote URLs.
package config
