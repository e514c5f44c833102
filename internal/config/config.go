package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	DatabaseMaxConns int32
	MigrationsPath   string
	Timezone         string
	DefaultLocale    string

	StripeSecretKey string
	PaymentCurrency string

	AMQPURL      string
	AMQPExchange string

	DiscordToken      string
	AnnounceChannelID string

	MetricsAddr string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
		Timezone:          getEnv("TIMEZONE", "Asia/Kolkata"),
		DefaultLocale:     getEnv("DEFAULT_LOCALE", "en"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "inr"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", "campustix.events"),
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),
		MetricsAddr:       getEnv("METRICS_ADDR", ":9090"),
	}

	if raw := os.Getenv("DATABASE_MAX_CONNS"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("config: DATABASE_MAX_CONNS invalide (%q)", raw)
		}
		cfg.DatabaseMaxConns = int32(n)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
		c.DatabaseURL = "postgres://localhost:5432/campustix?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: TIMEZONE invalide (%q): %w", c.Timezone, err)
	}

	if (c.DiscordToken == "") != (c.AnnounceChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN et ANNOUNCE_CHANNEL_ID doivent être fournis ensemble")
	}
	for _, r := range c.AnnounceChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: ANNOUNCE_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
		}
	}

	if c.AMQPURL != "" && strings.TrimSpace(c.AMQPExchange) == "" {
		return fmt.Errorf("config: AMQP_EXCHANGE est requis lorsque AMQP_URL est défini")
	}

	if len(c.PaymentCurrency) != 3 {
		return fmt.Errorf("config: PAYMENT_CURRENCY doit être un code ISO 4217 (ex: inr)")
	}
	c.PaymentCurrency = strings.ToLower(c.PaymentCurrency)

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
