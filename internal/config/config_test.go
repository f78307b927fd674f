package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected default storage driver: %q", cfg.StorageDriver)
	}
	if cfg.MaxSubstitutions != 5 {
		t.Fatalf("unexpected default MaxSubstitutions: %d", cfg.MaxSubstitutions)
	}
	if cfg.GoalThreshold != 200 || cfg.GoalGap != 20 {
		t.Fatalf("unexpected goal ladder defaults: %v / %v", cfg.GoalThreshold, cfg.GoalGap)
	}
	if cfg.HomeBonus != 6 {
		t.Fatalf("unexpected default HomeBonus: %v", cfg.HomeBonus)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected default CacheTTL: %s", cfg.CacheTTL)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "redis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_ScoringRuleOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MAX_SUBSTITUTIONS", "3")
	t.Setenv("GOAL_THRESHOLD", "180.5")
	t.Setenv("GOAL_GAP", "25")
	t.Setenv("HOME_BONUS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MaxSubstitutions != 3 {
		t.Fatalf("unexpected MaxSubstitutions: %d", cfg.MaxSubstitutions)
	}
	if cfg.GoalThreshold != 180.5 {
		t.Fatalf("unexpected GoalThreshold: %v", cfg.GoalThreshold)
	}
	if cfg.GoalGap != 25 {
		t.Fatalf("unexpected GoalGap: %v", cfg.GoalGap)
	}
	if cfg.HomeBonus != 0 {
		t.Fatalf("unexpected HomeBonus: %v", cfg.HomeBonus)
	}
}

func TestLoad_NegativeGoalGapRejected(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GOAL_GAP", "-5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative GOAL_GAP")
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

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
