package main

import (
	"flag"
	"os"
)

// serverConfig holds the monitor server's configuration.
type serverConfig struct {
	Addr     string
	LogLevel string
}

// configResolver defines how to resolve a single configuration value
// from a CLI flag, falling back to an environment variable, falling
// back to a default.
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*serverConfig, string)
}

// loadServerConfig loads the monitor server's configuration from CLI
// flags and environment variables. To add an option, add a resolver.
func loadServerConfig() serverConfig {
	cfg := serverConfig{}

	resolvers := []configResolver{
		{
			flagName:    "addr",
			envVarName:  "ACTINRINGS_MONITOR_ADDR",
			defaultVal:  ":8090",
			description: "HTTP listen address (e.g. :8090, 0.0.0.0:8090)",
			setter:      func(c *serverConfig, v string) { c.Addr = v },
		},
		{
			flagName:    "log-level",
			envVarName:  "ACTINRINGS_MONITOR_LOG_LEVEL",
			defaultVal:  "info",
			description: "log level: debug, info, warn, error",
			setter:      func(c *serverConfig, v string) { c.LogLevel = v },
		},
	}

	flagVars := make(map[string]*string)
	for _, resolver := range resolvers {
		flagVars[resolver.flagName] = flag.String(resolver.flagName, "", resolver.description)
	}
	flag.Parse()

	for _, resolver := range resolvers {
		var value string
		if *flagVars[resolver.flagName] != "" {
			value = *flagVars[resolver.flagName]
		} else if envValue := os.Getenv(resolver.envVarName); envValue != "" {
			value = envValue
		} else {
			value = resolver.defaultVal
		}
		resolver.setter(&cfg, value)
	}

	return cfg
}
