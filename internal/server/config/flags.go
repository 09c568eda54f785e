package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-t string   store driver: postgres, sqlite, mysql, mongo, memory
//	-d string   database DSN (or Mongo URI)
//	-s string   JWT HMAC secret key
//	-k value    token validity: a duration ("360000ms", "6m") or whole seconds
//	-b int      bcrypt cost
//	-l string   log level
//	-n string   NATS URL
//
// Only the flags above are looked at; args is filtered with flagx.FilterArgs
// first so -c / -env-file do not collide.
func parseFlags(config *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-g", "-t", "-d", "-s", "-k", "-b", "-l", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.StoreDriver, "t", config.StoreDriver, "user store driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.Func("k", "token validity: duration (e.g. 360000ms, 6m) or whole seconds", func(v string) error {
		d, err := parseValidity(v)
		if err != nil {
			return err
		}
		config.TokenValidityDuration = d
		return nil
	})
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.NATSURL, "n", config.NATSURL, "NATS URL")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	return nil
}

// parseValidity accepts a Go duration string or a bare number of seconds.
func parseValidity(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid token validity %q: want a duration or whole seconds", v)
	}
	return time.Duration(n) * time.Second, nil
}
