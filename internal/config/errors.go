package config

import (
	"errors"

	"github.com/dshills/snapnav/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalid indicates a setting holds a value outside its domain.
	ErrInvalid = errors.New("invalid configuration")

	// ErrFileNotFound indicates a required configuration file is missing.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnknownSetting indicates a setting path that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")
)

// ParseError is returned when a configuration file cannot be decoded.
type ParseError = loader.ParseError
