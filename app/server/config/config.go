package config

type Config struct {
	System struct {
		IsProd                bool   // production mode switch
		Listen                string // listen address
		DBConnectionString    string // Postgres connection string
		RedisConnectionString string // Redis connection string
	}
	Security struct {
		AuthSignatureKey string // key used to verify ID tokens issued by the identity provider
	}
	Seed struct {
		AdminEmail    string // subject of the first-boot admin account, optional
		AdminUsername string // username of the first-boot admin account, optional
	}
}
