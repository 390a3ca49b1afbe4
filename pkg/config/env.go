package config

// EnvPrefix is the envconfig prefix shared by every FREMED_* variable.
const EnvPrefix = "FREMED"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
