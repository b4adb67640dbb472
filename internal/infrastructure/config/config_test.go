package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func baseEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET_KEY":         "access-secret",
		"JWT_SECRET_REFRESH_KEY": "refresh-secret",
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(baseEnv()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8000" || cfg.AppName != "users_service" {
		t.Fatalf("unexpected defaults: port=%q app=%q", cfg.Port, cfg.AppName)
	}
	if cfg.JWT.AccessTTL() != 15*time.Minute || cfg.JWT.RefreshTTL() != 24*time.Hour {
		t.Fatalf("unexpected ttls: %v %v", cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Fatalf("unexpected algorithm %q", cfg.JWT.Algorithm)
	}
	if len(cfg.AllowedHosts) != 1 || cfg.AllowedHosts[0] != "localhost" {
		t.Fatalf("unexpected allowed hosts %v", cfg.AllowedHosts)
	}
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.Requests != 10 {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimit)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	env := baseEnv()
	env["ALLOWED_HOSTS"] = "api.example.com,localhost"
	env["ACCESS_TOKEN_EXPIRES_IN"] = "5"
	env["JWT_ALGORITHM"] = "HS512"

	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "localhost" {
		t.Fatalf("unexpected allowed hosts %v", cfg.AllowedHosts)
	}
	if cfg.JWT.AccessTTL() != 5*time.Minute || cfg.JWT.Algorithm != "HS512" {
		t.Fatalf("overrides not applied: %+v", cfg.JWT)
	}
}

func TestLoadFrom_Rejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(map[string]string)
		want   string
	}{
		"missing access secret":  {func(e map[string]string) { delete(e, "JWT_SECRET_KEY") }, "JWT_SECRET_KEY is required"},
		"missing refresh secret": {func(e map[string]string) { delete(e, "JWT_SECRET_REFRESH_KEY") }, "JWT_SECRET_REFRESH_KEY is required"},
		"shared secret":          {func(e map[string]string) { e["JWT_SECRET_REFRESH_KEY"] = e["JWT_SECRET_KEY"] }, "must differ"},
		"asymmetric algorithm":   {func(e map[string]string) { e["JWT_ALGORITHM"] = "RS256" }, "not supported"},
		"zero access ttl":        {func(e map[string]string) { e["ACCESS_TOKEN_EXPIRES_IN"] = "0" }, "ACCESS_TOKEN_EXPIRES_IN"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			env := baseEnv()
			tc.mutate(env)
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
