package config

import (
	"testing"
	"time"

	"github.com/claudynachos/LHL/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_ProcessEngineRequiresBinary(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ENGINE_MODE", EngineProcess)
	t.Setenv("ENGINE_BINARY_PATH", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ENGINE_MODE=process without ENGINE_BINARY_PATH")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_EngineConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ENGINE_MODE", EngineProcess)
	t.Setenv("ENGINE_BINARY_PATH", "/usr/local/bin/icesim")
	t.Setenv("ENGINE_TIMEOUT", "45s")
	t.Setenv("ENGINE_SEED", "12345")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.EngineMode != EngineProcess {
		t.Fatalf("unexpected EngineMode: %q", cfg.EngineMode)
	}
	if cfg.EngineBinaryPath != "/usr/local/bin/icesim" {
		t.Fatalf("unexpected EngineBinaryPath: %q", cfg.EngineBinaryPath)
	}
	if cfg.EngineTimeout != 45*time.Second {
		t.Fatalf("unexpected EngineTimeout: %s", cfg.EngineTimeout)
	}
	if cfg.EngineSeed != 12345 {
		t.Fatalf("unexpected EngineSeed: %d", cfg.EngineSeed)
	}
}

func TestLoad_InvalidEngineTimeout(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ENGINE_TIMEOUT", "-1s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive ENGINE_TIMEOUT")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("ENGINE_MODE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.EngineMode != EngineRated {
		t.Fatalf("unexpected EngineMode: %q", cfg.EngineMode)
	}
	if cfg.ServiceName != "lhl-simulator" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if cfg.PprofEnabled || cfg.UptraceEnabled || cfg.PyroscopeEnabled {
		t.Fatalf("observability should be off by default")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"warn":    logging.LevelWarn,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"info":    logging.LevelInfo,
		"bogus":   logging.LevelInfo,
	}
	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("LOG_LEVEL", value)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.LogLevel != want {
				t.Fatalf("LOG_LEVEL=%q parsed to %v, want %v", value, cfg.LogLevel, want)
			}
		})
	}
}
