package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file (-env-file, default ".env") into the
// process environment and copies every GOPHAUTH_* variable that is set into
// config. Variables already present in the environment win over the file.
// A missing default file is not an error; a missing explicit file is.
//
// JWT_SECRET is honoured as a fallback for GOPHAUTH_SECRET_KEY.
func parseEnv(config *Config, args []string) error {
	envFile := flagx.EnvFileFlag(args)
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	setString(&config.EndpointAddrHTTP, "GOPHAUTH_HTTP_ADDR")
	setString(&config.EndpointAddrGRPC, "GOPHAUTH_GRPC_ADDR")
	setString(&config.StoreDriver, "GOPHAUTH_STORE_DRIVER")
	setString(&config.DatabaseDSN, "GOPHAUTH_DATABASE_DSN")
	setString(&config.MongoDatabase, "GOPHAUTH_MONGO_DATABASE")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.SecretKey, "GOPHAUTH_SECRET_KEY")
	setString(&config.LogLevel, "GOPHAUTH_LOG_LEVEL")
	setString(&config.NATSURL, "GOPHAUTH_NATS_URL")
	setString(&config.NATSSubject, "GOPHAUTH_NATS_SUBJECT")
	setString(&config.S3RootUser, "GOPHAUTH_S3_ROOT_USER")
	setString(&config.S3RootPassword, "GOPHAUTH_S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "GOPHAUTH_S3_BUCKET")
	setString(&config.S3Region, "GOPHAUTH_S3_REGION")
	setString(&config.S3BaseEndpoint, "GOPHAUTH_S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("GOPHAUTH_ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = splitList(v)
	}

	var errs []error
	if err := setDuration(&config.TokenValidityDuration, "GOPHAUTH_TOKEN_VALIDITY"); err != nil {
		errs = append(errs, err)
	}
	if err := setDuration(&config.ShutdownTimeout, "GOPHAUTH_SHUTDOWN_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}
	if v, ok := os.LookupEnv("GOPHAUTH_BCRYPT_COST"); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("GOPHAUTH_BCRYPT_COST: %w", err))
		} else {
			config.BcryptCost = cost
		}
	}

	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
