package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "HEARTHSIDE_DB_DSN"
	EnvDBHost = "HEARTHSIDE_DB_HOST"
	EnvDBUser = "HEARTHSIDE_DB_USER"
	EnvDBName = "HEARTHSIDE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
