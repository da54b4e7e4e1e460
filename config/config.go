package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"studio/internal/domain/constants"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "6MB"
	defaultMaxUploadBytes     = 5 << 20
	defaultProfileImageSize   = 512
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Firebase app shared by Firestore, Auth and Cloud Messaging
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	Store *StoreConfig `json:"store" yaml:"store"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Storage *StorageConfig `json:"storage" yaml:"storage"`

	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// StoreConfig selects the document store and names its collections.
type StoreConfig struct {
	// "memory" or "firestore"
	Provider    string      `json:"provider" yaml:"provider"`
	Collections Collections `json:"collections" yaml:"collections"`
}

type Collections struct {
	Users    string `json:"users" yaml:"users"`
	Bookings string `json:"bookings" yaml:"bookings"`
	Messages string `json:"messages" yaml:"messages"`
}

// AuthConfig configures ID token verification.
type AuthConfig struct {
	// "local" (HS256 tokens signed with Secret) or "firebase"
	Provider string        `json:"provider" yaml:"provider"`
	Secret   string        `json:"secret" yaml:"secret"`
	TokenTTL time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
	// Users signing in with one of these emails get the admin role on first sight.
	AdminEmails []string `json:"adminEmails" yaml:"adminEmails"`
}

type StorageConfig struct {
	// gocloud blob URL, e.g. mem://, file:///var/studio, gs://bucket
	BucketURL        string `json:"bucketUrl" yaml:"bucketUrl"`
	PublicBaseURL    string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MaxUploadBytes   int64  `json:"maxUploadBytes" yaml:"maxUploadBytes"`
	ProfileImageSize int    `json:"profileImageSize" yaml:"profileImageSize"`
}

type PubSubConfig struct {
	// Provider type: "noop", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Worker push endpoint (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// RateLimitConfig throttles write endpoints per caller.
type RateLimitConfig struct {
	RequestsPerMinute int `json:"requestsPerMinute" yaml:"requestsPerMinute"`
	Burst             int `json:"burst" yaml:"burst"`
}

type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
	// FCM topic every administrator device subscribes to.
	AdminTopic string `json:"adminTopic" yaml:"adminTopic"`
	// Verify Google-signed push tokens; off for the local provider.
	VerifyPushToken bool `json:"verifyPushToken" yaml:"verifyPushToken"`
	// Audience expected in push tokens, usually the push endpoint URL.
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
	// "log" or "fcm"
	Notifier string `json:"notifier" yaml:"notifier"`
}

// LoadWithEnv loads <currEnv>.yaml through koanf and overlays environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(searchPaths, currEnv+".yaml")
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// STORE_COLLECTIONS_BOOKINGS -> store.collections.bookings, AUTH_ADMINEMAILS -> auth.adminEmails
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env failed")
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Firebase == nil {
		cfg.Firebase = &FirebaseConfig{}
	}
	if cfg.Store == nil {
		cfg.Store = &StoreConfig{}
	}
	if cfg.Store.Provider == "" {
		cfg.Store.Provider = constants.StoreProviderMemory
	}
	cols := &cfg.Store.Collections
	if cols.Users == "" {
		cols.Users = "users"
	}
	if cols.Bookings == "" {
		cols.Bookings = "bookings"
	}
	if cols.Messages == "" {
		cols.Messages = "messages"
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.Provider == "" {
		cfg.Auth.Provider = constants.AuthProviderLocal
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.BucketURL == "" {
		cfg.Storage.BucketURL = "mem://"
	}
	if cfg.Storage.MaxUploadBytes <= 0 {
		cfg.Storage.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Storage.ProfileImageSize <= 0 {
		cfg.Storage.ProfileImageSize = defaultProfileImageSize
	}
	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{Provider: constants.PubSubProviderNoop}
	}
	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{}
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Worker.AdminTopic == "" {
		cfg.Worker.AdminTopic = "studio-admins"
	}
	if cfg.Worker.Notifier == "" {
		cfg.Worker.Notifier = constants.NotifierLog
	}
}

func findConfigFile(searchPaths []string, name string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
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
