// Package config provides configuration loading and validation for the voice
// commerce client. It handles YAML-based configuration with struct validation
// covering the backend API, audio capture, playback, metrics, and logging.
package config
