package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sidx05/NewsHub/pkg/newsapi"
)

// clearEnv neutralizes every environment variable the config layer
// reads, so tests see only what they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		newsapi.EnvAPIHost,
		newsapi.EnvSiteURL,
		newsapi.EnvDeployHost,
		EnvCacheBackend,
		EnvRedisAddr,
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file there

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Host != "" {
		t.Errorf("host = %q, want empty", cfg.Host)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if d := cfg.TimeoutDuration(); d != defaultTimeout {
		t.Errorf("timeout = %v, want %v", d, defaultTimeout)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `
host = "https://news.example.com"
timeout = "5s"

[cache]
backend = "redis"

[cache.redis]
addr = "redis.internal:6379"
db = 2
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Host != "https://news.example.com" {
		t.Errorf("host = %q", cfg.Host)
	}
	if d := cfg.TimeoutDuration(); d != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", d)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Cache.Redis)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `host = "https://from-file.example.com"`)
	t.Setenv(newsapi.EnvAPIHost, "https://from-env.example.com")
	t.Setenv(EnvCacheBackend, "memory")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Host != "https://from-env.example.com" {
		t.Errorf("host = %q, env should beat the file", cfg.Host)
	}
	if cfg.Cache.Backend != CacheBackendMemory {
		t.Errorf("backend = %q, env should beat the default", cfg.Cache.Backend)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	clearEnv(t)

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for explicitly named missing file")
	}
}

func TestLoadConfigDefaultMissingIsFine(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := loadConfig(""); err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `host = [broken`)
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", defaultTimeout},
		{"valid", "2m", 2 * time.Minute},
		{"garbage", "soon", defaultTimeout},
		{"negative", "-3s", defaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Timeout: tt.value}
			if got := cfg.TimeoutDuration(); got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}
