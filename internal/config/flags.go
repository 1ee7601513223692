package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all auth-server configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (selects the PostgreSQL store when non-empty)
//	-snapshot-backend snapshot side-channel backend ("file" or "sqlite")
//	-snapshot-path snapshot file path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g. "168h")
//	-remember-token-duration extended token duration under rememberMe
//	-bcrypt-cost bcrypt work factor
//	-environment deployment environment ("production" enables Secure cookies)
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-sweep-interval expired-session sweeper period
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var snapshotBackend string
	var snapshotPath string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var rememberTokenDuration time.Duration
	var bcryptCost int
	var environment string
	var requestTimeout time.Duration
	var sweepInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&snapshotBackend, "snapshot-backend", "", "Snapshot backend: file or sqlite")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Snapshot file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	flag.DurationVar(&rememberTokenDuration, "remember-token-duration", 0, "Token duration under rememberMe (e.g., 720h)")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	flag.StringVar(&environment, "environment", "", "Deployment environment")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired session sweep interval")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey:          tokenSignKey,
			TokenIssuer:           tokenIssuer,
			TokenDuration:         tokenDuration,
			RememberTokenDuration: rememberTokenDuration,
			BcryptCost:            bcryptCost,
			Environment:           environment,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Snapshot: Snapshot{
				Backend: snapshotBackend,
				Path:    snapshotPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// ParseClientFlags parses all dashboard-client configuration flags.
//
// Flags:
//
//	-s auth server base URL
//	-f local session file path
//	-refresh-interval silent refresh period (e.g. "5m")
//	-request-timeout outbound request timeout (e.g. "10s")
//	-c/-config json file path with configs
func ParseClientFlags() *ClientConfig {
	var baseURL string
	var sessionFile string
	var refreshInterval time.Duration
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&baseURL, "s", "", "Auth server base URL")
	flag.StringVar(&sessionFile, "f", "", "Local session file path")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Silent token refresh interval (e.g., 5m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 10s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &ClientConfig{
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: ClientStorage{
			SessionFile: sessionFile,
		},
		Workers: ClientWorkers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the value
// does not shadow other config sources during the merge.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
