package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Contract-level descriptor
	Contract ContractConfig

	// Mint drop configuration
	Mint MintConfig

	// Transfer configuration
	Transfer TransferConfig

	// Event fan-out configuration
	Events EventsConfig
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port           string // API service port
	SwaggerBaseUrl string // Swagger API base URL
	PathPrefix     string // Path prefix for reverse proxy (e.g., "/registry")
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Type    string // Registry database type: pebble
	DataDir string // PebbleDB data directory
}

// ContractConfig contract-level metadata and identity
type ContractConfig struct {
	AccountID string // The registry's own account, the sole minting authority
	Spec      string // Metadata spec version, e.g. "nft-1.0.0"
	Name      string
	Symbol    string
	Icon      string
	BaseURI   string
}

// MintConfig configuration of the mint drop: price, caps and the metadata
// template. A single config-driven mint replaces per-drop copy-pasted variants.
type MintConfig struct {
	Price               string   // Mint price in base units (decimal integer string)
	StoragePricePerByte string   // Charged per marginal byte persisted by a mint
	MaxMint             int64    // Total mint cap
	MaxMintUsers        int64    // Cap on mints requested by external accounts
	MaxRoyaltyShares    int      // Max entries in a token's royalty map
	Media               []string // Rotating media URL list
	MediaHashes         []string // sha256 hashes matching Media by index
	TitleTemplate       string   // fmt template, receives the token ID
	Description         string
	Copies              uint64
	AllowCallerTokenIDs bool // Permit caller-chosen token IDs instead of the counter
}

// TransferConfig transfer configuration
type TransferConfig struct {
	Fee string // Required attached deposit, exactly this amount (spam guard)
}

// EventsConfig post-commit event fan-out configuration
type EventsConfig struct {
	ZmqEnabled bool   // Publish events on a ZMQ PUB socket
	ZmqAddress string // ZMQ bind address, e.g. "tcp://127.0.0.1:28632"
	WebhookUrl string // POST each event to this URL when set
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Server: ServerConfig{
			Port:           viper.GetString("server.port"),
			SwaggerBaseUrl: viper.GetString("server.swagger_base_url"),
			PathPrefix:     viper.GetString("server.path_prefix"),
		},

		Database: DatabaseConfig{
			Type:    viper.GetString("database.type"),
			DataDir: viper.GetString("database.data_dir"),
		},

		Contract: ContractConfig{
			AccountID: viper.GetString("contract.account_id"),
			Spec:      viper.GetString("contract.spec"),
			Name:      viper.GetString("contract.name"),
			Symbol:    viper.GetString("contract.symbol"),
			Icon:      viper.GetString("contract.icon"),
			BaseURI:   viper.GetString("contract.base_uri"),
		},

		Mint: MintConfig{
			Price:               viper.GetString("mint.price"),
			StoragePricePerByte: viper.GetString("mint.storage_price_per_byte"),
			MaxMint:             viper.GetInt64("mint.max_mint"),
			MaxMintUsers:        viper.GetInt64("mint.max_mint_users"),
			MaxRoyaltyShares:    viper.GetInt("mint.max_royalty_shares"),
			Media:               viper.GetStringSlice("mint.media"),
			MediaHashes:         viper.GetStringSlice("mint.media_hashes"),
			TitleTemplate:       viper.GetString("mint.title_template"),
			Description:         viper.GetString("mint.description"),
			Copies:              viper.GetUint64("mint.copies"),
			AllowCallerTokenIDs: viper.GetBool("mint.allow_caller_token_ids"),
		},

		Transfer: TransferConfig{
			Fee: viper.GetString("transfer.fee"),
		},

		Events: EventsConfig{
			ZmqEnabled: viper.GetBool("events.zmq_enabled"),
			ZmqAddress: viper.GetString("events.zmq_address"),
			WebhookUrl: viper.GetString("events.webhook_url"),
		},
	}

	ApplyDefaults(Cfg)

	return nil
}

// ApplyDefaults fill unset fields with default values. Exposed so tests can
// build a config without a yaml file.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "7461"
	}
	if cfg.Server.SwaggerBaseUrl == "" {
		cfg.Server.SwaggerBaseUrl = "localhost:" + cfg.Server.Port
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "pebble"
	}
	if cfg.Database.DataDir == "" {
		cfg.Database.DataDir = "./registry_data"
	}
	if cfg.Contract.AccountID == "" {
		cfg.Contract.AccountID = "registry.local"
	}
	if cfg.Contract.Spec == "" {
		cfg.Contract.Spec = "nft-1.0.0"
	}
	if cfg.Contract.Name == "" {
		cfg.Contract.Name = "Token Registry"
	}
	if cfg.Contract.Symbol == "" {
		cfg.Contract.Symbol = "REG"
	}
	if cfg.Mint.Price == "" {
		cfg.Mint.Price = "5000000000000000000000000"
	}
	if cfg.Mint.StoragePricePerByte == "" {
		cfg.Mint.StoragePricePerByte = "10000000000000000000"
	}
	if cfg.Mint.MaxMint == 0 {
		cfg.Mint.MaxMint = 500
	}
	if cfg.Mint.MaxMintUsers == 0 {
		cfg.Mint.MaxMintUsers = 300
	}
	if cfg.Mint.MaxRoyaltyShares == 0 {
		cfg.Mint.MaxRoyaltyShares = 6
	}
	if cfg.Mint.TitleTemplate == "" {
		cfg.Mint.TitleTemplate = "Token #%s"
	}
	if cfg.Mint.Copies == 0 {
		cfg.Mint.Copies = 1
	}
	if cfg.Transfer.Fee == "" {
		cfg.Transfer.Fee = "1"
	}
}
