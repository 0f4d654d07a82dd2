package config

// EnvPrefix is the envconfig prefix shared by every LabStock variable.
const EnvPrefix = "labstock"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LABSTOCK_DB_DSN"
	EnvDBHost = "LABSTOCK_DB_HOST"
	EnvDBUser = "LABSTOCK_DB_USER"
	EnvDBName = "LABSTOCK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
