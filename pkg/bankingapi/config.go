package bankingapi

// DefaultAPIPrefix is the path the banking service mounts its public API under.
const DefaultAPIPrefix = "/api/v1/banking"

type Config struct {
	BaseURL   string `mapstructure:"base_url"`
	APIPrefix string `mapstructure:"api_prefix"`
}

func (c Config) prefix() string {
	if c.APIPrefix == "" {
		return DefaultAPIPrefix
	}
	return c.APIPrefix
}
