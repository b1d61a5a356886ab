package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validRemote() Config {
	return Config{
		Port:                 "8081",
		DataBackend:          "remote",
		CustomersURL:         "http://localhost:3000/customers",
		TransactionsURL:      "http://localhost:3000/transactions",
		FetchTimeout:         15 * time.Second,
		ViewCacheSize:        256,
		ViewCacheTTL:         10 * time.Minute,
		CacheCleanupInterval: time.Minute,
		LogLevel:             "info",
		LogFormat:            "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid remote backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.CustomersURL = ""
				c.TransactionsURL = ""
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:    "valid trusted proxies",
			mutate:  func(c *Config) { c.TrustedProxies = []string{"203.0.113.0/24", "2001:db8::/32"} },
			wantErr: false,
		},
		{
			name:        "invalid trusted proxy",
			mutate:      func(c *Config) { c.TrustedProxies = []string{"203.0.113.7"} },
			wantErr:     true,
			errorString: "invalid trusted proxy '203.0.113.7': must be a CIDR",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sqlite" },
			wantErr:     true,
			errorString: "invalid data backend 'sqlite': must be one of [remote memory sheets]",
		},
		{
			name:        "remote backend missing customers url",
			mutate:      func(c *Config) { c.CustomersURL = "" },
			wantErr:     true,
			errorString: "CUSTOMERS_URL is required when using remote backend",
		},
		{
			name:        "remote backend bad transactions scheme",
			mutate:      func(c *Config) { c.TransactionsURL = "ftp://example.com/tx" },
			wantErr:     true,
			errorString: "invalid TRANSACTIONS_URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name:        "remote backend url without host",
			mutate:      func(c *Config) { c.CustomersURL = "http:///customers" },
			wantErr:     true,
			errorString: "missing host",
		},
		{
			name:        "fetch timeout too long",
			mutate:      func(c *Config) { c.FetchTimeout = 10 * time.Minute },
			wantErr:     true,
			errorString: "invalid fetch timeout 10m0s: must be at most 5 minutes",
		},
		{
			name: "sheets backend missing spreadsheet ID",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
				c.GoogleCustomersRange = "Customers!A:B"
				c.GoogleTransactionsRange = "Transactions!A:D"
				c.GoogleServiceAccountJSON = "{}"
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required when using sheets backend",
		},
		{
			name: "sheets backend missing credentials",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
				c.GoogleSpreadsheetID = "123456789"
				c.GoogleCustomersRange = "Customers!A:B"
				c.GoogleTransactionsRange = "Transactions!A:D"
			},
			wantErr:     true,
			errorString: "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend",
		},
		{
			name:        "invalid view cache size - too small",
			mutate:      func(c *Config) { c.ViewCacheSize = 0 },
			wantErr:     true,
			errorString: "invalid view cache size 0: must be at least 1",
		},
		{
			name:        "invalid cleanup interval - too short",
			mutate:      func(c *Config) { c.CacheCleanupInterval = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache cleanup interval 500ms: must be at least 1 second",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "trace" },
			wantErr:     true,
			errorString: "invalid log level 'trace'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be 'text' or 'json'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validRemote()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validRemote()
	cfg.Port = "abc"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Config.Validate() error = nil, want error")
	}
	for _, want := range []string{"invalid port", "invalid log format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Config.Validate() error = %v, want it to mention %q", err, want)
		}
	}
}

func TestConfig_ValidateWithFiles(t *testing.T) {
	tmpDir := t.TempDir()
	saFile := filepath.Join(tmpDir, "service-account.json")
	if err := os.WriteFile(saFile, []byte(`{"type":"service_account"}`), 0644); err != nil {
		t.Fatalf("Failed to create test service account file: %v", err)
	}

	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{name: "valid sheets backend with file", file: saFile, wantErr: false},
		{name: "sheets backend with non-existent file", file: "/non/existent/file.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validRemote()
			cfg.DataBackend = "sheets"
			cfg.GoogleSpreadsheetID = "123456789"
			cfg.GoogleCustomersRange = "Customers!A:B"
			cfg.GoogleTransactionsRange = "Transactions!A:D"
			cfg.GoogleServiceAccountFile = tt.file

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "DATA_BACKEND", "CUSTOMERS_URL", "TRANSACTIONS_URL", "FETCH_TIMEOUT",
		"VIEW_CACHE_SIZE", "VIEW_CACHE_TTL", "LOG_LEVEL", "LOG_FORMAT",
		"TRUSTED_PROXIES",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "remote" {
			t.Errorf("Load() DataBackend = %v, want remote", cfg.DataBackend)
		}
		if cfg.CustomersURL != "http://localhost:3000/customers" {
			t.Errorf("Load() CustomersURL = %v", cfg.CustomersURL)
		}
		if cfg.FetchTimeout != 15*time.Second {
			t.Errorf("Load() FetchTimeout = %v, want 15s", cfg.FetchTimeout)
		}
		if cfg.ViewCacheSize != 256 {
			t.Errorf("Load() ViewCacheSize = %v, want 256", cfg.ViewCacheSize)
		}
		if len(cfg.TrustedProxies) != 0 {
			t.Errorf("Load() TrustedProxies = %v, want none", cfg.TrustedProxies)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("TRANSACTIONS_URL", "https://api.example.com/transactions")
		t.Setenv("FETCH_TIMEOUT", "3s")
		t.Setenv("VIEW_CACHE_SIZE", "32")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("TRUSTED_PROXIES", " 203.0.113.0/24, ,198.51.100.0/24")

		cfg := Load()

		if strings.Join(cfg.TrustedProxies, "|") != "203.0.113.0/24|198.51.100.0/24" {
			t.Errorf("Load() TrustedProxies = %v", cfg.TrustedProxies)
		}

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.TransactionsURL != "https://api.example.com/transactions" {
			t.Errorf("Load() TransactionsURL = %v", cfg.TransactionsURL)
		}
		if cfg.FetchTimeout != 3*time.Second {
			t.Errorf("Load() FetchTimeout = %v, want 3s", cfg.FetchTimeout)
		}
		if cfg.ViewCacheSize != 32 {
			t.Errorf("Load() ViewCacheSize = %v, want 32", cfg.ViewCacheSize)
		}
		if cfg.LogFormat != "json" {
			t.Errorf("Load() LogFormat = %v, want json", cfg.LogFormat)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("VIEW_CACHE_SIZE", "invalid")
		t.Setenv("FETCH_TIMEOUT", "invalid")

		cfg := Load()

		if cfg.ViewCacheSize != 256 {
			t.Errorf("Load() ViewCacheSize = %v, want 256 (default for invalid input)", cfg.ViewCacheSize)
		}
		if cfg.FetchTimeout != 15*time.Second {
			t.Errorf("Load() FetchTimeout = %v, want 15s (default for invalid input)", cfg.FetchTimeout)
		}
	})
}
