/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"time"

	"github.com/suparena/entitymanager/errors"
)

// DefaultStrategyName is the reserved name unmarked entities resolve.
const DefaultStrategyName = "default"

// CacheStrategy is a named cache sizing policy.
type CacheStrategy struct {
	Strategy          string `yaml:"strategy"`
	Size              int    `yaml:"size"`
	ExpireMillisecond int64  `yaml:"expireMillisecond"`
}

// Expiry returns the strategy's expiry as a duration.
func (s CacheStrategy) Expiry() time.Duration {
	return time.Duration(s.ExpireMillisecond) * time.Millisecond
}

// PersisterStrategy is a named persistence policy. Policy is opaque to the
// manager; the persistence layer interprets it (for example "time30s").
type PersisterStrategy struct {
	Strategy string `yaml:"strategy"`
	Policy   string `yaml:"policy"`
}

// Built-in defaults used when the configuration declares no "default" entry.
var (
	DefaultCacheStrategy     = CacheStrategy{Strategy: DefaultStrategyName, Size: 3000, ExpireMillisecond: 600_000}
	DefaultPersisterStrategy = PersisterStrategy{Strategy: DefaultStrategyName, Policy: "time30s"}
)

// ResolveCacheStrategy resolves a cache strategy for the entity named
// entityType. An explicit non-empty name must match a configured strategy
// exactly. An empty name resolves the configured "default" entry, falling
// back to the built-in default when the configuration declares none.
//
// Explicit names never fall back: a typo in an entity marker is a
// configuration error, not a request for defaults. The same policy applies
// to both strategy kinds.
func (c *Config) ResolveCacheStrategy(entityType, name string) (CacheStrategy, error) {
	if name != "" {
		for _, s := range c.Caches {
			if s.Strategy == name {
				return s, nil
			}
		}
		return CacheStrategy{}, errors.NewStrategyNotFoundError(entityType, "cache", name)
	}
	for _, s := range c.Caches {
		if s.Strategy == DefaultStrategyName {
			return s, nil
		}
	}
	return DefaultCacheStrategy, nil
}

// ResolvePersisterStrategy resolves a persister strategy for the entity named
// entityType, under the same rules as ResolveCacheStrategy.
func (c *Config) ResolvePersisterStrategy(entityType, name string) (PersisterStrategy, error) {
	if name != "" {
		for _, s := range c.Persisters {
			if s.Strategy == name {
				return s, nil
			}
		}
		return PersisterStrategy{}, errors.NewStrategyNotFoundError(entityType, "persister", name)
	}
	for _, s := range c.Persisters {
		if s.Strategy == DefaultStrategyName {
			return s, nil
		}
	}
	return DefaultPersisterStrategy, nil
}
