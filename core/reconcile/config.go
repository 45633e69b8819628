package reconcile

// Config holds configuration for batch imports.
type Config struct {
	// BatchSize is the number of rows persisted per chunk.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// Workers bounds concurrent row writes inside a chunk.
	Workers int `mapstructure:"workers" default:"8"`
	// EmptyScopePolicy is "unrestricted" or "deny".
	EmptyScopePolicy string `mapstructure:"empty_scope_policy" default:"unrestricted"`
	// AuditRawLimit caps the raw row dump stored with the audit trail, in bytes.
	AuditRawLimit int `mapstructure:"audit_raw_limit" default:"10000"`
}

// Policy returns the configured empty-scope policy.
func (c Config) Policy() ScopePolicy {
	if ScopePolicy(c.EmptyScopePolicy) == ScopeDeny {
		return ScopeDeny
	}
	return ScopeUnrestricted
}

// IsValidPolicy checks if the configured policy is known.
func (c Config) IsValidPolicy() bool {
	switch ScopePolicy(c.EmptyScopePolicy) {
	case ScopeUnrestricted, ScopeDeny:
		return true
	default:
		return false
	}
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
	return c
}
