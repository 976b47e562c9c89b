package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobtrack/internal/flagx"
	"github.com/dmitrijs2005/jobtrack/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "72h" and integer nanoseconds are accepted.
// Absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	InMemory                    *bool           `json:"in_memory"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	HealthCheckInterval         *timex.Duration `json:"health_check_interval"`
	LogLevel                    *string         `json:"log_level"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	ExportURLValidityDuration   *timex.Duration `json:"export_url_validity_duration"`
}

// parseJson loads configuration values from the JSON file named by -c,
// -config or the CONFIG environment variable. Nothing happens when no path
// is given. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	copyIfSet(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	copyIfSet(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	copyIfSet(&config.DatabaseDSN, c.DatabaseDSN)
	copyIfSet(&config.InMemory, c.InMemory)
	copyIfSet(&config.SecretKey, c.SecretKey)
	copyIfSet(&config.LogLevel, c.LogLevel)
	copyIfSet(&config.S3RootUser, c.S3RootUser)
	copyIfSet(&config.S3RootPassword, c.S3RootPassword)
	copyIfSet(&config.S3Bucket, c.S3Bucket)
	copyIfSet(&config.S3Region, c.S3Region)
	copyIfSet(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.ExportURLValidityDuration != nil {
		config.ExportURLValidityDuration = c.ExportURLValidityDuration.Duration
	}
}

func copyIfSet[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
