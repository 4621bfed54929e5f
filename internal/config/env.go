package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/network"
)

// Config contains all configuration parameters for the application.
// Note: the wallet password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	Network        string        `envconfig:"STELLAR_NETWORK" default:"testnet"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// *_KNOWN_POOLS are pool contracts checked by /status and read by a PoolLoader when one is set.
	TestnetHorizonURL  string   `envconfig:"TESTNET_HORIZON_URL" default:"https://horizon-testnet.stellar.org"`
	TestnetRPCURL      string   `envconfig:"TESTNET_RPC_URL" default:"https://soroban-testnet.stellar.org"`
	TestnetPoolFactory string   `envconfig:"TESTNET_POOL_FACTORY"`
	TestnetBackstop    string   `envconfig:"TESTNET_BACKSTOP"`
	TestnetKnownPools  []string `envconfig:"TESTNET_KNOWN_POOLS"`
	MainnetHorizonURL  string   `envconfig:"MAINNET_HORIZON_URL" default:"https://horizon.stellar.org"`
	MainnetRPCURL      string   `envconfig:"MAINNET_RPC_URL" default:"https://soroban-rpc.mainnet.stellar.gateway.fm"`
	MainnetPoolFactory string   `envconfig:"MAINNET_POOL_FACTORY"`
	MainnetBackstop    string   `envconfig:"MAINNET_BACKSTOP"`
	MainnetKnownPools  []string `envconfig:"MAINNET_KNOWN_POOLS"`

	WalletFilePath    string        `envconfig:"WALLET_FILE_PATH"`
	WalletAutoApprove bool          `envconfig:"WALLET_AUTO_APPROVE" default:"false"`
	SignCooldown      time.Duration `envconfig:"SIGN_COOLDOWN" default:"0s"`

	DemoData      bool     `envconfig:"DEMO_DATA" default:"true"`
	StorePath     string   `envconfig:"STORE_PATH" default:"launchpad-store.json"`
	RedisAddrs    []string `envconfig:"REDIS_ADDR"`
	RedisPassword string   `envconfig:"REDIS_PASSWORD"`
	RedisDB       int      `envconfig:"REDIS_DB" default:"0"`

	PinataJWT        string `envconfig:"PINATA_JWT"`
	PinataAPIKey     string `envconfig:"PINATA_API_KEY"`
	PinataSecretKey  string `envconfig:"PINATA_SECRET_KEY"`
	PinataAPIURL     string `envconfig:"PINATA_API_URL" default:"https://api.pinata.cloud"`
	GatewayURL       string `envconfig:"GATEWAY" default:"https://gateway.pinata.cloud"`
	PinRatePerMinute int    `envconfig:"PIN_RATE_PER_MINUTE" default:"10"`

	CoinGeckoURL   string   `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads an optional .env file, then configuration from environment variables.
// Variables already set in the environment win over the file.
func Init(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := network.ParseSelection(c.Network); err != nil {
		return fmt.Errorf("invalid STELLAR_NETWORK: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Selection returns the network to start on.
func (c *Config) Selection() network.Selection {
	s, err := network.ParseSelection(c.Network)
	if err != nil {
		return network.Testnet
	}
	return s
}

// Endpoints returns the per-network endpoints with the configured overrides applied.
func (c *Config) Endpoints() network.Endpoints {
	ep := network.DefaultEndpoints()

	ep.Testnet.HorizonURL = c.TestnetHorizonURL
	ep.Testnet.RPCURL = c.TestnetRPCURL
	ep.Testnet.Contracts.KnownPools = c.TestnetKnownPools
	if c.TestnetPoolFactory != "" {
		ep.Testnet.Contracts.PoolFactory = c.TestnetPoolFactory
	}
	if c.TestnetBackstop != "" {
		ep.Testnet.Contracts.Backstop = c.TestnetBackstop
	}

	ep.Mainnet.HorizonURL = c.MainnetHorizonURL
	ep.Mainnet.RPCURL = c.MainnetRPCURL
	ep.Mainnet.Contracts.KnownPools = c.MainnetKnownPools
	if c.MainnetPoolFactory != "" {
		ep.Mainnet.Contracts.PoolFactory = c.MainnetPoolFactory
	}
	if c.MainnetBackstop != "" {
		ep.Mainnet.Contracts.Backstop = c.MainnetBackstop
	}
	return ep
}

// PinataCredentials returns the Pinata credentials. They never leave the backend.
func (c *Config) PinataCredentials() client.PinataCredentials {
	return client.PinataCredentials{
		JWT:       c.PinataJWT,
		APIKey:    c.PinataAPIKey,
		SecretKey: c.PinataSecretKey,
	}
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFilePath returns path to the .skey key file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	passwordBytes = raw
	return nil
}

// ReadPassword reads a non-empty password from the terminal without echo.
// Caller must zero the returned slice after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
