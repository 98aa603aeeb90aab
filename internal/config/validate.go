package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Share.validate(); err != nil {
		return fmt.Errorf("share: %w", err)
	}

	if c.Transfer.MaxDocumentBytes <= 0 {
		return fmt.Errorf("transfer.max_document_bytes must be > 0 (got %d)", c.Transfer.MaxDocumentBytes)
	}
	if c.Transfer.MaxEntities <= 0 {
		return fmt.Errorf("transfer.max_entities must be > 0 (got %d)", c.Transfer.MaxEntities)
	}
	if c.Transfer.SnapshotEnabled && !c.Storage.Enabled() {
		return fmt.Errorf("transfer.snapshot_enabled requires storage.endpoint")
	}

	if c.Reorder.MaxSiblings <= 0 {
		return fmt.Errorf("reorder.max_siblings must be > 0 (got %d)", c.Reorder.MaxSiblings)
	}

	if c.Redis.Enabled() {
		if _, err := url.Parse(c.Redis.URL); err != nil {
			return fmt.Errorf("redis.url: %w", err)
		}
	}

	if c.RateLimit.ShareResolve < 0 {
		return fmt.Errorf("rate_limit.share_resolve must be >= 0 (got %d)", c.RateLimit.ShareResolve)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (s *ShareConfig) validate() error {
	if s.TokenBytes < 16 {
		return fmt.Errorf("token_bytes must be >= 16 (got %d)", s.TokenBytes)
	}
	if s.MaxExpiresIn <= 0 {
		return fmt.Errorf("max_expires_in must be > 0 (got %s)", s.MaxExpiresIn)
	}
	if s.PublicBaseURL != "" {
		u, err := url.Parse(s.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("public_base_url must be an absolute URL (got %q)", s.PublicBaseURL)
		}
		s.PublicBaseURL = strings.TrimRight(s.PublicBaseURL, "/")
	}
	return nil
}
