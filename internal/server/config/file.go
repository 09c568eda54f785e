package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// FileConfig is the on-disk shape of the configuration, shared by JSON and
// YAML files. Durations accept "360s"-style strings or integer nanoseconds.
type FileConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	StoreDriver           string         `json:"store_driver" yaml:"store_driver"`
	DatabaseDSN           string         `json:"database_dsn" yaml:"database_dsn"`
	MongoDatabase         string         `json:"mongo_database" yaml:"mongo_database"`
	SecretKey             string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
	AllowedOrigins        []string       `json:"allowed_origins" yaml:"allowed_origins"`
	NATSURL               string         `json:"nats_url" yaml:"nats_url"`
	NATSSubject           string         `json:"nats_subject" yaml:"nats_subject"`
	S3RootUser            string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile overlays config with the file named by -c / -config. Keys absent
// from the file keep their current values. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc := toFile(config)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	fromFile(config, fc)
	return nil
}

func toFile(c *Config) *FileConfig {
	return &FileConfig{
		EndpointAddrHTTP:      c.EndpointAddrHTTP,
		EndpointAddrGRPC:      c.EndpointAddrGRPC,
		StoreDriver:           c.StoreDriver,
		DatabaseDSN:           c.DatabaseDSN,
		MongoDatabase:         c.MongoDatabase,
		SecretKey:             c.SecretKey,
		TokenValidityDuration: timex.Duration{Duration: c.TokenValidityDuration},
		BcryptCost:            c.BcryptCost,
		LogLevel:              c.LogLevel,
		AllowedOrigins:        c.AllowedOrigins,
		NATSURL:               c.NATSURL,
		NATSSubject:           c.NATSSubject,
		S3RootUser:            c.S3RootUser,
		S3RootPassword:        c.S3RootPassword,
		S3Bucket:              c.S3Bucket,
		S3Region:              c.S3Region,
		S3BaseEndpoint:        c.S3BaseEndpoint,
		ShutdownTimeout:       timex.Duration{Duration: c.ShutdownTimeout},
	}
}

func fromFile(c *Config, fc *FileConfig) {
	c.EndpointAddrHTTP = fc.EndpointAddrHTTP
	c.EndpointAddrGRPC = fc.EndpointAddrGRPC
	c.StoreDriver = fc.StoreDriver
	c.DatabaseDSN = fc.DatabaseDSN
	c.MongoDatabase = fc.MongoDatabase
	c.SecretKey = fc.SecretKey
	c.TokenValidityDuration = fc.TokenValidityDuration.Duration
	c.BcryptCost = fc.BcryptCost
	c.LogLevel = fc.LogLevel
	c.AllowedOrigins = fc.AllowedOrigins
	c.NATSURL = fc.NATSURL
	c.NATSSubject = fc.NATSSubject
	c.S3RootUser = fc.S3RootUser
	c.S3RootPassword = fc.S3RootPassword
	c.S3Bucket = fc.S3Bucket
	c.S3Region = fc.S3Region
	c.S3BaseEndpoint = fc.S3BaseEndpoint
	c.ShutdownTimeout = fc.ShutdownTimeout.Duration
}
