package config

// EnvPrefix is passed to envconfig when processing the environment.
// Individual fields carry fully-qualified envconfig tags, so the prefix
// stays empty to avoid double-prefixing.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "EVENTRA_APP_ENV"
	EnvPort                   = "EVENTRA_APP_PORT"
	EnvDBDSN                  = "EVENTRA_DB_DSN"
	EnvDBHost                 = "EVENTRA_DB_HOST"
	EnvDBUser                 = "EVENTRA_DB_USER"
	EnvDBName                 = "EVENTRA_DB_NAME"
	EnvRedisURL               = "EVENTRA_REDIS_URL"
	EnvJWTSecret              = "EVENTRA_JWT_SECRET"
	EnvJWTIssuer              = "EVENTRA_JWT_ISSUER"
	EnvJWTExpMins             = "EVENTRA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "EVENTRA_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
