package config

import "time"

// Client-side defaults.
const (
	DefaultClientBaseURL        = "http://localhost:8080"
	DefaultClientRequestTimeout = 10 * time.Second
	DefaultRefreshInterval      = 5 * time.Minute
	DefaultSessionFile          = "tradedesk-session.json"
)

// ClientConfig is the top-level configuration container for the dashboard
// client binary.
type ClientConfig struct {
	// Adapter configures the HTTP connection to the auth server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage configures the local session snapshot.
	Storage ClientStorage `envPrefix:"STORAGE_"`

	// Workers configures the silent token-refresh job.
	Workers ClientWorkers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds settings for the outbound HTTP client.
type Adapter struct {
	// BaseURL is the root URL of the auth server
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound request; after it elapses the
	// call fails uniformly with a request-timeout error.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientStorage holds settings for the locally persisted auth snapshot.
type ClientStorage struct {
	// SessionFile is the path of the JSON file holding the persisted
	// token + user snapshot between client restarts.
	// Env: STORAGE_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// ClientWorkers holds settings for client background jobs.
type ClientWorkers struct {
	// RefreshInterval is the period of the silent token-refresh job that
	// runs while the client is authenticated.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetClientConfig loads and merges the dashboard-client configuration from
// environment variables, command-line flags and an optional JSON file, then
// fills remaining gaps with defaults.
func GetClientConfig() (*ClientConfig, error) {
	return newClientConfigBuilder().
		withEnv().
		withFlags().
		withDefaults().
		build()
}
