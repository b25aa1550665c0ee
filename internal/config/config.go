package config

import (
	"fmt"
	"time"

	"wallet-ledger/internal/ledger"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Worker      WorkerConfig
	Economy     EconomyConfig
	Admin       AdminConfig
	Policy      PolicyConfig
	Matchmaking MatchmakingConfig
	Nats        NatsConfig
}
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	PrettyLogs      bool          `env:"LOG_PRETTY" envDefault:"true"`
}
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"wallet"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

// URL is the connection string shared by the pool and the migrator
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"memory"`
}
type WorkerConfig struct {
	ReconcileInterval time.Duration `env:"WORKER_RECONCILE_INTERVAL" envDefault:"5m"`
}
type EconomyConfig struct {
	CommissionRate decimal.Decimal    `env:"COMMISSION_RATE" envDefault:"0.06"`
	MinEntry       decimal.Decimal    `env:"MIN_ENTRY" envDefault:"10"`
	MinDeposit     decimal.Decimal    `env:"MIN_DEPOSIT" envDefault:"10"`
	MinWithdrawal  decimal.Decimal    `env:"MIN_WITHDRAWAL" envDefault:"10"`
	MinPhoneLength int                `env:"MIN_PHONE_LENGTH" envDefault:"10"`
	ReferralReward decimal.Decimal    `env:"REFERRAL_REWARD" envDefault:"15"`
	BonusLadder    ledger.BonusLadder `env:"DEPOSIT_BONUS_TIERS" envDefault:"500:0.02,1000:0.05"`
}

// AdminConfig is a placeholder gate, not real authentication.
type AdminConfig struct {
	Phone    string `env:"ADMIN_PHONE" envDefault:"01577378394"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"AnAmFJAaj@1"`
}
type PolicyConfig struct {
	LogEntryFees       bool `env:"POLICY_LOG_ENTRY_FEES" envDefault:"false"`
	LogWinCredits      bool `env:"POLICY_LOG_WIN_CREDITS" envDefault:"false"`
	RecordLosses       bool `env:"POLICY_RECORD_LOSSES" envDefault:"false"`
	RefundOnCancel     bool `env:"POLICY_REFUND_ON_CANCEL" envDefault:"false"`
	BlockBannedPlayers bool `env:"POLICY_BLOCK_BANNED_PLAYERS" envDefault:"false"`
}
type MatchmakingConfig struct {
	Wait time.Duration `env:"MATCHMAKING_WAIT" envDefault:"2s"`
}
type NatsConfig struct {
	URL   string `env:"NATS_URL"`
	Token string `env:"NATS_TOKEN"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("invalid config: unknown storage driver %q", c.Storage.Driver)
	}
	rate := c.Economy.CommissionRate
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid config: commission rate %s must be in [0, 1)", rate)
	}
	if c.Economy.ReferralReward.IsNegative() {
		return fmt.Errorf("invalid config: referral reward must not be negative")
	}
	if c.Matchmaking.Wait < 0 {
		return fmt.Errorf("invalid config: matchmaking wait must not be negative")
	}
	return nil
}
