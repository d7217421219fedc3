package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Behyna/banking-portal/pkg/httpclient"
	"github.com/spf13/viper"
)

const DocumentPath = "/config.json"

const (
	sourceEnv      = "env"
	sourceDocument = "document"
)

type Source interface {
	Name() string
	Load(ctx context.Context) (Config, error)
}

// NewSource picks the environment source in development and the served
// configuration document in production.
func NewSource(mode Mode, envPrefix, origin string, client httpclient.HTTPClient) (Source, error) {
	switch mode {
	case ModeDevelopment:
		return NewEnvSource(envPrefix), nil
	case ModeProduction:
		if strings.TrimSpace(origin) == "" {
			return nil, fmt.Errorf("production mode requires a serving origin")
		}
		return NewDocumentSource(origin, client), nil
	default:
		return nil, fmt.Errorf("unknown portal mode %q", mode)
	}
}

// EnvSource reads <PREFIX>_BANKING_SERVICE_URL and its siblings from the
// process environment. Values are used as given.
type EnvSource struct {
	prefix string
	v      *viper.Viper
}

func NewEnvSource(prefix string) *EnvSource {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()

	return &EnvSource{prefix: prefix, v: v}
}

func (s *EnvSource) Name() string {
	return sourceEnv
}

func (s *EnvSource) Load(_ context.Context) (Config, error) {
	cfg := Config{
		BankingServiceURL: strings.TrimSpace(s.v.GetString(KeyBankingServiceURL)),
		AccountServiceURL: strings.TrimSpace(s.v.GetString(KeyAccountServiceURL)),
		CardServiceURL:    strings.TrimSpace(s.v.GetString(KeyCardServiceURL)),
	}

	if cfg.BankingServiceURL == "" {
		return Config{}, &ConfigError{Source: sourceEnv, Reason: s.envName(KeyBankingServiceURL) + " is not set"}
	}

	return cfg, nil
}

func (s *EnvSource) envName(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.ToUpper(s.prefix) + "_" + key
}

// DocumentSource fetches /config.json from the origin the portal is served from.
type DocumentSource struct {
	url    string
	client httpclient.HTTPClient
}

func NewDocumentSource(origin string, client httpclient.HTTPClient) *DocumentSource {
	return &DocumentSource{
		url:    strings.TrimRight(withScheme(origin), "/") + DocumentPath,
		client: client,
	}
}

func (s *DocumentSource) Name() string {
	return sourceDocument
}

func (s *DocumentSource) Load(ctx context.Context) (Config, error) {
	resp, err := s.client.Get(ctx, s.url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return Config{}, &ConfigError{Source: sourceDocument, Reason: "fetch " + s.url, Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Config{}, &ConfigError{
			Source: sourceDocument,
			Reason: fmt.Sprintf("fetch %s: unexpected status %d", s.url, resp.StatusCode),
		}
	}

	var doc Config
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Config{}, &ConfigError{Source: sourceDocument, Reason: "decode " + s.url, Err: err}
	}

	if strings.TrimSpace(doc.BankingServiceURL) == "" {
		return Config{}, &ConfigError{
			Source: sourceDocument,
			Reason: KeyBankingServiceURL + " missing from " + s.url,
		}
	}

	return Config{
		BankingServiceURL: withScheme(doc.BankingServiceURL),
		AccountServiceURL: withScheme(doc.AccountServiceURL),
		CardServiceURL:    withScheme(doc.CardServiceURL),
	}, nil
}
