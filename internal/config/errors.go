package config

import "errors"

var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigParse indicates the configuration file is not valid YAML for Config.
	ErrConfigParse = errors.New("configuration file could not be parsed")

	// ErrConfigInvalid indicates a configuration value failed validation.
	ErrConfigInvalid = errors.New("configuration is invalid")

	// ErrConfigExists indicates Init refused to overwrite an existing file.
	ErrConfigExists = errors.New("configuration file already exists")
)
