package config

const (
	EnvPrefix = "BOOKSTORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DefaultSQLiteDSN = "file:bookstore.db?cache=shared&_foreign_keys=on"

	EnvAppEnv                 = "BOOKSTORE_APP_ENV"
	EnvPort                   = "BOOKSTORE_APP_PORT"
	EnvDBDSN                  = "BOOKSTORE_DB_DSN"
	EnvDBDriver               = "BOOKSTORE_DB_DRIVER"
	EnvDBHost                 = "BOOKSTORE_DB_HOST"
	EnvDBUser                 = "BOOKSTORE_DB_USER"
	EnvDBName                 = "BOOKSTORE_DB_NAME"
	EnvRedisURL               = "BOOKSTORE_REDIS_URL"
	EnvJWTSecret              = "BOOKSTORE_JWT_SECRET"
	EnvJWTIssuer              = "BOOKSTORE_JWT_ISSUER"
	EnvJWTExpMins             = "BOOKSTORE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BOOKSTORE_REFRESH_TOKEN_TTL_MINUTES"
	EnvCategoryCacheTTL       = "BOOKSTORE_CATEGORY_CACHE_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
