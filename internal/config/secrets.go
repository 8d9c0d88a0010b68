// internal/config/secrets.go
//
// Vault reference resolution.
//
// A secret-bearing field may hold `vault:<mount/path>#<key>`, for example
// `vault:secret/console#session_secret`.  resolveSecrets replaces each
// reference with the KV-v2 value before validation runs.

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const vaultPrefix = "vault:"

// secretTTL caches resolved values inside the Vault client.
const secretTTL = 10 * time.Minute

var ErrBadVaultRef = errors.New("config: malformed vault reference")

// SecretResolver is the slice of *vault.Client the loader needs.
type SecretResolver interface {
	GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error)
}

// parseVaultRef splits "vault:secret/console#key".  ok is false when s is
// not a Vault reference at all.
func parseVaultRef(s string) (path, key string, ok bool, err error) {
	if !strings.HasPrefix(s, vaultPrefix) {
		return "", "", false, nil
	}
	path, key, found := strings.Cut(strings.TrimPrefix(s, vaultPrefix), "#")
	if !found || path == "" || key == "" {
		return "", "", true, fmt.Errorf("%w: %q", ErrBadVaultRef, s)
	}
	return path, key, true, nil
}

// secretFields lists the fields that may carry Vault references.
func (c *Config) secretFields() map[string]*string {
	return map[string]*string{
		"store.dsn":        &c.Store.DSN,
		"session.secret":   &c.Session.Secret,
		"session.csrf_key": &c.Session.CSRFKey,
	}
}

// hasVaultRefs reports whether any secret field needs resolution.
func (c *Config) hasVaultRefs() bool {
	for _, p := range c.secretFields() {
		if strings.HasPrefix(*p, vaultPrefix) {
			return true
		}
	}
	return false
}

// resolveSecrets swaps every Vault reference for its value.
func (c *Config) resolveSecrets(ctx context.Context, sr SecretResolver) error {
	for name, p := range c.secretFields() {
		path, key, ok, err := parseVaultRef(*p)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			continue
		}
		val, err := sr.GetKV(ctx, path, key, secretTTL)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*p = val
	}
	return nil
}
