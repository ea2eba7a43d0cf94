package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config is read from a JSON file; fields left out keep their defaults.
type Config struct {
	Addr          string `json:"addr"`
	LogLevel      string `json:"log_level"`
	ReadTimeoutMs int    `json:"read_timeout_ms"`
	IdleTimeoutMs int    `json:"idle_timeout_ms"`
	MaxBodyBytes  int64  `json:"max_body_bytes"`
	SessionSecret string `json:"session_secret"`
	SessionTTLSec int    `json:"session_ttl_s"`
	CookieName    string `json:"cookie_name"`
	SecureCookies bool   `json:"secure_cookies"`
	UseStdHTTP    bool   `json:"use_net_http"`
}

func defaultConfig() *Config {
	return &Config{
		Addr:          ":8080",
		LogLevel:      "info",
		ReadTimeoutMs: 10000,
		IdleTimeoutMs: 60000,
		MaxBodyBytes:  1 << 20,
		SessionSecret: "change-me",
		SessionTTLSec: 3600,
		CookieName:    "httpx_session",
	}
}

func (c *Config) ReadTimeout() time.Duration { return time.Duration(c.ReadTimeoutMs) * time.Millisecond }
func (c *Config) IdleTimeout() time.Duration { return time.Duration(c.IdleTimeoutMs) * time.Millisecond }
func (c *Config) SessionTTL() time.Duration  { return time.Duration(c.SessionTTLSec) * time.Second }

// loadConfig reads path over the defaults. A missing or unreadable file
// yields the defaults; invalid fields fall back one by one.
func loadConfig(path string, log zerolog.Logger) *Config {
	def := defaultConfig()
	if path == "" {
		return def
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config not readable, using defaults")
		return def
	}
	cfg := defaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("invalid config, using defaults")
		return def
	}

	if cfg.Addr == "" {
		log.Warn().Msgf("addr is empty, falling back to %s", def.Addr)
		cfg.Addr = def.Addr
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil || cfg.LogLevel == "" {
		log.Warn().Msgf("log_level=%q is invalid, falling back to %s", cfg.LogLevel, def.LogLevel)
		cfg.LogLevel = def.LogLevel
	}
	if cfg.ReadTimeoutMs < 0 {
		log.Warn().Msgf("read_timeout_ms=%d is invalid, falling back to %d", cfg.ReadTimeoutMs, def.ReadTimeoutMs)
		cfg.ReadTimeoutMs = def.ReadTimeoutMs
	}
	if cfg.IdleTimeoutMs < 0 {
		log.Warn().Msgf("idle_timeout_ms=%d is invalid, falling back to %d", cfg.IdleTimeoutMs, def.IdleTimeoutMs)
		cfg.IdleTimeoutMs = def.IdleTimeoutMs
	}
	if cfg.MaxBodyBytes <= 0 {
		log.Warn().Msgf("max_body_bytes=%d is invalid, falling back to %d", cfg.MaxBodyBytes, def.MaxBodyBytes)
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.SessionSecret == "" {
		log.Warn().Msg("session_secret is empty, falling back to the default secret")
		cfg.SessionSecret = def.SessionSecret
	}
	if cfg.SessionTTLSec < 0 {
		log.Warn().Msgf("session_ttl_s=%d is invalid, falling back to %d", cfg.SessionTTLSec, def.SessionTTLSec)
		cfg.SessionTTLSec = def.SessionTTLSec
	}
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	return cfg
}
