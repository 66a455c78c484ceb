package config

// Environment variable names, kept in one place so tests and docs stay honest.
const (
	EnvAppEnv                 = "STOCKROOM_APP_ENV"
	EnvPort                   = "STOCKROOM_APP_PORT"
	EnvLogLevel               = "STOCKROOM_LOG_LEVEL"
	EnvRedisURL               = "STOCKROOM_REDIS_URL"
	EnvJWTSecret              = "STOCKROOM_JWT_SECRET"
	EnvJWTIssuer              = "STOCKROOM_JWT_ISSUER"
	EnvJWTExpMins             = "STOCKROOM_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "STOCKROOM_REFRESH_TOKEN_TTL_MINUTES"
)
