package storage

import "time"

// Config holds the object storage settings of the upload archive.
type Config struct {
	// Enabled turns upload archiving on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is host:port, optionally prefixed with http:// or https://.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	Region    string `mapstructure:"region" default:""`
	// Bucket receives archived upload files.
	Bucket string `mapstructure:"bucket" default:"store-ops"`
	// ArchivePrefix is the key prefix of archived uploads.
	ArchivePrefix  string `mapstructure:"archive_prefix" default:"imports"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns the connection timeout, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
