package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/kbukum/rxfetch/errors"
)

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBaseConfigApplyDefaults(t *testing.T) {
	cfg := BaseConfig{}
	cfg.ApplyDefaults()
	if cfg.Name != ServiceName || cfg.Environment != "development" {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	cfg = BaseConfig{Name: "svc", Environment: "production"}
	cfg.ApplyDefaults()
	if cfg.Name != "svc" || cfg.Environment != "production" {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    BaseConfig
		errMsg string
	}{
		{"valid development", BaseConfig{Name: "svc", Environment: "development"}, ""},
		{"valid staging", BaseConfig{Name: "svc", Environment: "staging"}, ""},
		{"valid production", BaseConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", BaseConfig{Environment: "production"}, "name: is required"},
		{"invalid environment", BaseConfig{Name: "svc", Environment: "invalid"}, "environment: must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if !slices.Equal(cfg.Pipelines.IDs, []int{1, 3, 4}) {
		t.Errorf("unexpected ids %v", cfg.Pipelines.IDs)
	}
	if !cfg.FetchesEmbedded() || cfg.Fetch.BaseURL != "http://127.0.0.1:8081" {
		t.Errorf("fetch should target the embedded API, got %q", cfg.Fetch.BaseURL)
	}
	if cfg.Telemetry.ServiceName != ServiceName || cfg.Telemetry.Environment != "development" {
		t.Errorf("telemetry not aligned with base: %+v", cfg.Telemetry)
	}
}

func TestApplyDefaults_ExplicitBaseURL(t *testing.T) {
	cfg := Default()
	cfg.Fetch.BaseURL = "http://users.internal:9000"
	cfg.ApplyDefaults()
	if cfg.FetchesEmbedded() || cfg.Fetch.BaseURL != "http://users.internal:9000" {
		t.Errorf("explicit base url must win, got %q", cfg.Fetch.BaseURL)
	}
}

func TestApplyDefaults_DebugRaisesLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Debug = true
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"empty ids", func(c *AppConfig) { c.Pipelines.IDs = nil }, "pipelines.ids"},
		{"duplicate ids", func(c *AppConfig) { c.Pipelines.IDs = []int{1, 1} }, "pipelines.ids"},
		{"non-positive id", func(c *AppConfig) { c.Pipelines.IDs = []int{1, 0} }, "pipelines.ids[1]"},
		{"bad base url", func(c *AppConfig) { c.Fetch.BaseURL = "not a url" }, "fetch.base_url"},
		{"negative timeout", func(c *AppConfig) { c.Fetch.Timeout = -time.Second }, "fetch.timeout"},
		{"sample rate", func(c *AppConfig) { c.Telemetry.SampleRate = 2 }, "telemetry.sample_rate"},
		{"port range", func(c *AppConfig) { c.UserAPI.Server.Port = 70000 }, "user_api.server.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected %s in %q", tt.field, err.Error())
			}
		})
	}
}

func TestAppConfigValidate_Logging(t *testing.T) {
	cfg := Default()
	cfg.ApplyDefaults()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("expected logging error, got %v", err)
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
name: rxfetch-test
environment: staging
fetch:
  timeout: 2s
  rate_limit: 5
user_api:
  enabled: false
  latency_ms:
    2: 50
  fail_ids: [3]
pipelines:
  ids: [7, 8]
`)

	cfg := Default()
	if err := LoadConfig(ServiceName, &cfg, WithConfigFile(path), WithFileSystem(&RealFileSystem{})); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "rxfetch-test" || cfg.Environment != "staging" {
		t.Errorf("base not loaded: %+v", cfg.BaseConfig)
	}
	if cfg.Fetch.Timeout != 2*time.Second || cfg.Fetch.RateLimit != 5 {
		t.Errorf("fetch not loaded: %+v", cfg.Fetch)
	}
	if cfg.UserAPI.Enabled {
		t.Error("user_api.enabled=false must override the default")
	}
	if len(cfg.UserAPI.LatencyMS) != 1 || cfg.UserAPI.LatencyMS[2] != 50 {
		t.Errorf("latency map should replace the defaults, got %v", cfg.UserAPI.LatencyMS)
	}
	if !slices.Equal(cfg.UserAPI.FailIDs, []int{3}) || !slices.Equal(cfg.Pipelines.IDs, []int{7, 8}) {
		t.Errorf("lists not loaded: %v %v", cfg.UserAPI.FailIDs, cfg.Pipelines.IDs)
	}
	if cfg.UserAPI.Users != 10 {
		t.Errorf("absent keys keep defaults, got users=%d", cfg.UserAPI.Users)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := Default()
	err := LoadConfig(ServiceName, &cfg, WithConfigFile("/nonexistent/config.yml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoadConfigNoFiles(t *testing.T) {
	cfg := Default()
	if err := LoadConfig(ServiceName, &cfg, WithFileSystem(&mockFS{})); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Pipelines.IDs, []int{1, 3, 4}) {
		t.Errorf("defaults should survive, got %v", cfg.Pipelines.IDs)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "fetch:\n  timeout: 2s\n")
	t.Setenv("RXFETCH_FETCH_TIMEOUT", "750ms")
	t.Setenv("RXFETCH_USER_API_SERVER_PORT", "9191")
	t.Setenv("RXFETCH_PIPELINES_IDS", "5,6")
	t.Setenv("FETCH_TIMEOUT", "1h")

	cfg := Default()
	if err := LoadConfig(ServiceName, &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Fetch.Timeout != 750*time.Millisecond {
		t.Errorf("env should override file, got %v", cfg.Fetch.Timeout)
	}
	if cfg.UserAPI.Server.Port != 9191 {
		t.Errorf("nested env override failed, got %d", cfg.UserAPI.Server.Port)
	}
	if !slices.Equal(cfg.Pipelines.IDs, []int{5, 6}) {
		t.Errorf("list env override failed, got %v", cfg.Pipelines.IDs)
	}
}

func TestAutoBindEnvVars_PrefixOnly(t *testing.T) {
	v := viper.New()
	autoBindEnvVars(v, []string{"RXFETCH_DEBUG=true", "DEBUG=false", "PATH=/bin", "BROKEN"})
	if !v.GetBool("debug") {
		t.Error("RXFETCH_DEBUG should bind debug")
	}
	if v.IsSet("path") {
		t.Error("unprefixed variables must be ignored")
	}
}

func TestConfigResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/rxfetch/config.yml": true,
		"./config.yml":             true,
		".env":                     true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("rxfetch", LoaderConfig{})
	if files.ConfigFile != "./cmd/rxfetch/config.yml" {
		t.Errorf("expected cmd config first, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", files.EnvFile)
	}

	files = r.ResolveFiles("rxfetch", LoaderConfig{ConfigFile: "/etc/rx.yml", EnvFile: "/etc/rx.env"})
	if files.ConfigFile != "/etc/rx.yml" || files.EnvFile != "/etc/rx.env" {
		t.Errorf("explicit paths must win, got %+v", files)
	}
}

func TestLoadConfigLoadsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{".env": true}}
	cfg := Default()
	if err := LoadConfig(ServiceName, &cfg, WithFileSystem(fs)); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fs.loaded, []string{".env"}) {
		t.Errorf("expected .env to be loaded, got %v", fs.loaded)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"DEBUG", []string{"debug"}},
		{"FETCH_TIMEOUT", []string{"fetch_timeout", "fetch.timeout"}},
		{"FETCH_BASE_URL", []string{"fetch.base_url"}},
		{"USER_API_SERVER_PORT", []string{"user_api.server.port", "user_api.server_port"}},
	}
	for _, tt := range tests {
		got := generateEnvKeyVariants(tt.key)
		for _, w := range tt.want {
			if !slices.Contains(got, w) {
				t.Errorf("%s: missing variant %q in %v", tt.key, w, got)
			}
		}
		if len(removeDuplicates(got)) != len(got) {
			t.Errorf("%s: duplicate variants %v", tt.key, got)
		}
	}
}
