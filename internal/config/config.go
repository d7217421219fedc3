package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/internal/logging"
	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"github.com/Behyna/banking-portal/pkg/httpclient"
	"github.com/spf13/viper"
)

const envPrefix = "PORTAL"

type Config struct {
	API      API               `mapstructure:"api"`
	Portal   Portal            `mapstructure:"portal"`
	HTTP     httpclient.Config `mapstructure:"http"`
	Log      logging.Config    `mapstructure:"log"`
	Services endpoint.Config   `mapstructure:"services"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Portal struct {
	// Mode selects where the banking endpoint comes from: development reads
	// the environment, production fetches /config.json from Origin.
	Mode      string `mapstructure:"mode"`
	Origin    string `mapstructure:"origin"`
	EnvPrefix string `mapstructure:"env_prefix"`
	APIPrefix string `mapstructure:"api_prefix"`
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from dir. Every key can be overridden with
// PORTAL_<SECTION>_<KEY>, e.g. PORTAL_PORTAL_MODE=production.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if _, err := endpoint.ParseMode(cfg.Portal.Mode); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")
	v.SetDefault("portal.mode", string(endpoint.ModeDevelopment))
	v.SetDefault("portal.origin", "")
	v.SetDefault("portal.env_prefix", "VITE")
	v.SetDefault("portal.api_prefix", bankingapi.DefaultAPIPrefix)
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.development", false)
	v.SetDefault("services.banking_service_url", "")
	v.SetDefault("services.account_service_url", "")
	v.SetDefault("services.card_service_url", "")
}
