package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates that no token signing key was provided
	// by any configuration source. The server refuses to start without one.
	ErrMissingTokenSignKey = errors.New("missing token sign key")

	// ErrInvalidAuthConfigs indicates inconsistent token-lifecycle settings
	// (for example, a rememberMe duration shorter than the base duration).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")

	// ErrInvalidStorageConfigs indicates invalid storage settings (for
	// example, an unknown snapshot backend or an empty snapshot path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a zero refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
