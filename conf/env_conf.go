package conf

// SystemEnvironment deployment environment
type SystemEnvironment string

const (
	LocalEnvironmentEnum   SystemEnvironment = "loc"
	MainnetEnvironmentEnum SystemEnvironment = "mainnet"
	TestnetEnvironmentEnum SystemEnvironment = "testnet"
)

// SystemEnvironmentEnum current environment, set from the -env flag before InitConfig
var SystemEnvironmentEnum = MainnetEnvironmentEnum

// GetYaml return config file path for the current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case LocalEnvironmentEnum:
		return "./conf/registry_loc.yaml"
	case TestnetEnvironmentEnum:
		return "./conf/registry_testnet.yaml"
	default:
		return "./conf/registry_mainnet.yaml"
	}
}
