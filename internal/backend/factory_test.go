package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"txdash/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) error = nil, want error")
	}

	app := &config.Config{
		DataBackend:     "remote",
		CustomersURL:    "http://localhost:3000/customers",
		TransactionsURL: "http://localhost:3000/transactions",
		FetchTimeout:    5 * time.Second,
		DataFile:        "db.json",
	}
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != RemoteBackend || cfg.CustomersURL != app.CustomersURL || cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FromAppConfig() = %+v", cfg)
	}

	app.DataBackend = "sqlite"
	if _, err := FromAppConfig(app); err == nil {
		t.Error("FromAppConfig() with sqlite backend error = nil, want error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"remote ok", Config{Type: RemoteBackend, CustomersURL: "http://a/c", TransactionsURL: "http://a/t"}, false},
		{"remote missing url", Config{Type: RemoteBackend, CustomersURL: "http://a/c"}, true},
		{"memory ok", Config{Type: MemoryBackend}, false},
		{"sheets missing id", Config{Type: SheetsBackend, GoogleServiceAccountJSON: "{}"}, true},
		{"sheets missing credentials", Config{Type: SheetsBackend, GoogleSpreadsheetID: "x"}, true},
		{"unknown type", Config{Type: "sqlite"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	want := []string{"remote", "memory", "sheets"}
	if len(got) != len(want) {
		t.Fatalf("GetBackendTypeStrings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetBackendTypeStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCreateBackend_Memory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	doc := `{"customers":[{"id":1,"name":"Alice"}],"transactions":[{"id":7,"customer_id":1,"date":"2024-01-01","amount":12.5}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend, DataFile: path})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	defer res.Close()

	customers, err := res.Backend.ListCustomers(context.Background())
	if err != nil || len(customers) != 1 || customers[0].Name != "Alice" {
		t.Errorf("ListCustomers() = %v, %v", customers, err)
	}
	txs, err := res.Backend.ListTransactions(context.Background())
	if err != nil || len(txs) != 1 || txs[0].Amount != 12.5 {
		t.Errorf("ListTransactions() = %v, %v", txs, err)
	}
}

func TestCreateBackend_Remote(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{
		Type:            RemoteBackend,
		CustomersURL:    "http://localhost:3000/customers",
		TransactionsURL: "http://localhost:3000/transactions",
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	if res.Backend == nil {
		t.Fatal("CreateBackend() returned nil backend")
	}
	if err := res.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCreateBackend_Invalid(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{
		Type:            RemoteBackend,
		CustomersURL:    "ftp://localhost/customers",
		TransactionsURL: "http://localhost/transactions",
	})
	if err == nil {
		t.Error("CreateBackend() with ftp url error = nil, want error")
	}
}
