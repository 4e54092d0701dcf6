package inits

import (
	"fmt"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/config"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	cfg := &config.Config{}

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // default listen address
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigkey, exist := os.LookupEnv("AUTH_SIGNATURE_KEY"); !exist {
		return nil, fmt.Errorf("AUTH_SIGNATURE_KEY environment variable not set")
	} else {
		cfg.Security.AuthSignatureKey = sigkey
	}

	// Optional: seeds the first admin account when the store is empty
	cfg.Seed.AdminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	cfg.Seed.AdminUsername = os.Getenv("SEED_ADMIN_USERNAME")

	return cfg, nil
}
