package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr        string
	DBPath      string
	AdminSecret string
	RateLimits  RateLimits

	Version   string
	Commit    string
	BuildTime string
}

type RateLimits struct {
	ThoughtPerMinute int
	SignupPerMinute  int
	LoginPerMinute   int
}

func Load() Config {
	addr := envString("THOUGHTWALL_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	cfg := Config{
		Addr:        addr,
		DBPath:      envString("THOUGHTWALL_DB", "thoughtwall.db"),
		AdminSecret: envString("THOUGHTWALL_ADMIN_SECRET", "dev-admin-secret"),
		RateLimits: RateLimits{
			ThoughtPerMinute: envInt("THOUGHTWALL_RL_THOUGHT_PER_MIN", 30),
			SignupPerMinute:  envInt("THOUGHTWALL_RL_SIGNUP_PER_MIN", 10),
			LoginPerMinute:   envInt("THOUGHTWALL_RL_LOGIN_PER_MIN", 20),
		},
		Version: "0.1.0",
	}

	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
