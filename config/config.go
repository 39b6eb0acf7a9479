package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultHTTPPort   = 8080
	defaultAdminPort  = 8081
	defaultWorkerPort = 8082

	defaultVerificationCode = "1234"
	defaultAccessTokenTTL   = 24 * time.Hour

	defaultCrowdMediumThreshold = 50
	defaultCrowdHighThreshold   = 150

	defaultMatchSweepInterval = time.Minute

	defaultQRCodeSize  = 256
	defaultQRCodeLevel = "M"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`

		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`

		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Admin is the internal ops/venue-owner API served on its own port.
	Admin struct {
		Enabled bool `json:"enabled" yaml:"enabled"`
		Port    int  `json:"port" yaml:"port"`
	} `json:"admin" yaml:"admin"`

	// Worker is the event-ingest/sweeper delivery served on its own port.
	Worker struct {
		Enabled bool `json:"enabled" yaml:"enabled"`
		Port    int  `json:"port" yaml:"port"`
	} `json:"worker" yaml:"worker"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// Auth configures the demo phone-verification flow.
	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Demo toggles the demo-data overlays; all off means pure real
	// aggregation everywhere.
	Demo *DemoConfig `json:"demo" yaml:"demo"`

	// CrowdStats holds the crowd-density presentation thresholds.
	CrowdStats *CrowdStatsConfig `json:"crowdStats" yaml:"crowdStats"`

	// Match holds the match-expiry policy.
	Match *MatchConfig `json:"match" yaml:"match"`

	// PubSub configuration for event publishing.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for venue check-in QR codes.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// AuthConfig defines the demo phone-verification settings. There is no real
// SMS provider behind this: the code is a fixed demo value.
type AuthConfig struct {
	VerificationCode string        `json:"verificationCode" yaml:"verificationCode"`
	AccessTokenTTL   time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
}

// DemoConfig toggles the individual demo-data overlays.
type DemoConfig struct {
	// Seed loads the curated demo venues, events, menus and filler users at
	// startup.
	Seed bool `json:"seed" yaml:"seed"`

	// MockStats substitutes randomized crowd statistics for the real
	// aggregation on every venue read.
	MockStats bool `json:"mockStats" yaml:"mockStats"`

	// MockDistance annotates match candidates with a randomized distance.
	MockDistance bool `json:"mockDistance" yaml:"mockDistance"`

	// FillerPresence appends the fixed demo guests to venue people lists.
	FillerPresence bool `json:"fillerPresence" yaml:"fillerPresence"`

	// RandSeed fixes the demo RNG when non-zero; zero means time-seeded.
	RandSeed int64 `json:"randSeed" yaml:"randSeed"`
}

// CrowdStatsConfig holds the crowd-density tier thresholds. These are
// presentation constants, not capacity limits.
type CrowdStatsConfig struct {
	MediumThreshold int `json:"mediumThreshold" yaml:"mediumThreshold"`
	HighThreshold   int `json:"highThreshold" yaml:"highThreshold"`
}

// MatchConfig holds the match-expiry policy. A zero PendingTTL disables the
// sweep entirely, which is the default: pending swipes then never expire.
type MatchConfig struct {
	PendingTTL    time.Duration `json:"pendingTtl" yaml:"pendingTtl"`
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP push or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider); usually the
	// worker delivery's /push endpoint.
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf, then overlays environment
// variables aligned to the existing YAML key casing.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a path and align each segment with
			// existing YAML keys. Example: DEMO_MOCKSTATS -> demo.mockStats
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills every unset section so downstream code never has to
// nil-check the tunables it reads.
func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = defaultAdminPort
	}
	if cfg.Worker.Port == 0 {
		cfg.Worker.Port = defaultWorkerPort
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.VerificationCode == "" {
		cfg.Auth.VerificationCode = defaultVerificationCode
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = defaultAccessTokenTTL
	}

	if cfg.Demo == nil {
		cfg.Demo = &DemoConfig{}
	}

	if cfg.CrowdStats == nil {
		cfg.CrowdStats = &CrowdStatsConfig{}
	}
	if cfg.CrowdStats.MediumThreshold == 0 {
		cfg.CrowdStats.MediumThreshold = defaultCrowdMediumThreshold
	}
	if cfg.CrowdStats.HighThreshold == 0 {
		cfg.CrowdStats.HighThreshold = defaultCrowdHighThreshold
	}

	if cfg.Match == nil {
		cfg.Match = &MatchConfig{}
	}
	if cfg.Match.SweepInterval == 0 {
		cfg.Match.SweepInterval = defaultMatchSweepInterval
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{
			Size:                 defaultQRCodeSize,
			ErrorCorrectionLevel: defaultQRCodeLevel,
		}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
