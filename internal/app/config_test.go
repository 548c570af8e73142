package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr == "" || cfg.MetricsAddr == "" {
		t.Fatalf("default addresses must be set: %+v", cfg)
	}
	if cfg.StorageBackend != StorageMemory {
		t.Fatalf("expected memory backend by default, got %q", cfg.StorageBackend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "memory backend", mutate: func(*Config) {}},
		{name: "redis backend with addr", mutate: func(c *Config) {
			c.StorageBackend = StorageRedis
		}},
		{name: "redis backend without addr", mutate: func(c *Config) {
			c.StorageBackend = StorageRedis
			c.RedisAddr = ""
		}, wantErr: true},
		{name: "postgres backend without dsn", mutate: func(c *Config) {
			c.StorageBackend = StoragePostgres
		}, wantErr: true},
		{name: "postgres backend with dsn", mutate: func(c *Config) {
			c.StorageBackend = StoragePostgres
			c.PostgresDSN = "postgres://localhost/shopcart"
		}},
		{name: "unknown backend", mutate: func(c *Config) {
			c.StorageBackend = "etcd"
		}, wantErr: true},
		{name: "invalid page size", mutate: func(c *Config) {
			c.PageSize = 0
		}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
