package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
Gym check-in service.

Usage:
  fitpass [flags]

Flags:
  -config-path string   Path to the config yaml file (default "config.yaml")
  -help                 Show this message

Configuration is read from the yaml file and the environment; environment
variables always win. See config.Config for the full variable list.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig dumps the effective configuration, secrets excluded.
func PrintConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	fmt.Println("Configuration:")
	fmt.Printf("  server:    %s:%s (log level %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Printf("  database:  %s:%s/%s (user %s)\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database, cfg.Database.User)
	fmt.Printf("  rabbitmq:  %s:%s (user %s)\n", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User)
	fmt.Printf("  auth:      access ttl %s, refresh ttl %s\n", cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
}
