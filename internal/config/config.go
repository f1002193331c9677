package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Credentials are the optional API keys. An empty key disables the provider
// that needs it; its metrics are reported as missing.
type Credentials struct {
	MacroAPIKey string
	PriceAPIKey string
}

type Config struct {
	Credentials Credentials

	HTTPAddr string
	RedisURL string

	MacroCacheTTLSecs     int
	PriceCacheTTLSecs     int
	SentimentCacheTTLSecs int
	RefreshIntervalSecs   int
}

func (c *Config) MacroCacheTTL() time.Duration {
	return time.Duration(c.MacroCacheTTLSecs) * time.Second
}

func (c *Config) PriceCacheTTL() time.Duration {
	return time.Duration(c.PriceCacheTTLSecs) * time.Second
}

func (c *Config) SentimentCacheTTL() time.Duration {
	return time.Duration(c.SentimentCacheTTLSecs) * time.Second
}

func Load() *Config {
	cfg := &Config{
		Credentials: Credentials{
			MacroAPIKey: strings.TrimSpace(os.Getenv("FRED_API_KEY")),
			PriceAPIKey: strings.TrimSpace(os.Getenv("ALPHA_VANTAGE_KEY")),
		},
		RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),
	}

	if cfg.Credentials.MacroAPIKey == "" {
		log.Println("Warning: FRED_API_KEY not set, macro series will be unavailable")
	}
	if cfg.Credentials.PriceAPIKey == "" {
		log.Println("Warning: ALPHA_VANTAGE_KEY not set, price fallback disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, using in-memory cache")
	}

	cfg.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.MacroCacheTTLSecs = positiveInt("MACRO_CACHE_TTL_SECS", 3600)
	cfg.PriceCacheTTLSecs = positiveInt("PRICE_CACHE_TTL_SECS", 3600)
	cfg.SentimentCacheTTLSecs = positiveInt("SENTIMENT_CACHE_TTL_SECS", 7200)

	cfg.RefreshIntervalSecs = 900
	if v := strings.TrimSpace(os.Getenv("REFRESH_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RefreshIntervalSecs = n
		} else {
			log.Printf("Warning: invalid REFRESH_INTERVAL_SECS=%q, using %d", v, cfg.RefreshIntervalSecs)
		}
	}

	return cfg
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
