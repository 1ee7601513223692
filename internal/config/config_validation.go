// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the auth server relies on at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		switch cfg.Storage.Snapshot.Backend {
		case "file", "sqlite":
		default:
			return ErrInvalidStorageConfigs
		}
		if cfg.Storage.Snapshot.Path == "" {
			return ErrInvalidStorageConfigs
		}
	}

	if cfg.Auth.TokenDuration <= 0 || cfg.Auth.RememberTokenDuration < cfg.Auth.TokenDuration {
		return ErrInvalidAuthConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.SessionFile == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.RefreshInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
