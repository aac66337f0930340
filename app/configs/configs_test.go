package configs

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLoadSessionKeysRoundTrip(t *testing.T) {
	authKey, encKey, err := GenerateSessionKeys()
	if err != nil {
		t.Fatalf("GenerateSessionKeys: %v", err)
	}

	keys, err := LoadSessionKeys(ENV{AppAuthKey: authKey, AppEncKey: encKey})
	if err != nil {
		t.Fatalf("LoadSessionKeys: %v", err)
	}
	if len(keys.AuthKey) != 64 || len(keys.EncKey) != 32 {
		t.Errorf("unexpected key sizes %d/%d", len(keys.AuthKey), len(keys.EncKey))
	}
	if len(keys.Pairs()) != 2 {
		t.Errorf("Pairs() = %d entries, want 2", len(keys.Pairs()))
	}
}

func TestLoadSessionKeysErrors(t *testing.T) {
	authKey, encKey, err := GenerateSessionKeys()
	if err != nil {
		t.Fatalf("GenerateSessionKeys: %v", err)
	}

	tests := []struct {
		name string
		env  ENV
	}{
		{name: "missing auth", env: ENV{AppEncKey: encKey}},
		{name: "missing enc", env: ENV{AppAuthKey: authKey}},
		{name: "bad base64", env: ENV{AppAuthKey: "%%%", AppEncKey: encKey}},
		{name: "short enc", env: ENV{AppAuthKey: authKey, AppEncKey: "YWJj"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSessionKeys(tt.env); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteSessionKeys(t *testing.T) {
	var out bytes.Buffer
	if err := WriteSessionKeys(&out, ""); err != nil {
		t.Fatalf("WriteSessionKeys: %v", err)
	}
	if !strings.Contains(out.String(), "APP_AUTH_KEY=") || !strings.Contains(out.String(), "APP_ENC_KEY=") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_MAX_RETRIES", "3")
	t.Setenv("EMAIL_PORT", "2525")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://rainy.example ,")
	t.Setenv("APP_URL", "https://rainy.example/")
	t.Setenv("TRUST_PROXY_HEADERS", "")

	env := LoadEnv()
	if env.TrustProxyHeaders {
		t.Error("TrustProxyHeaders should default to false")
	}
	if env.Port != ":8000" {
		t.Errorf("Port = %q", env.Port)
	}
	if env.DBDriver != "mysql" {
		t.Errorf("DBDriver = %q", env.DBDriver)
	}
	if env.DBMaxRetries != 3 || env.EmailPort != 2525 {
		t.Errorf("numeric values not parsed: %d %d", env.DBMaxRetries, env.EmailPort)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "https://rainy.example" {
		t.Errorf("CORSOrigins = %v", env.CORSOrigins)
	}
	if env.AppURL != "https://rainy.example" {
		t.Errorf("AppURL = %q", env.AppURL)
	}

	t.Setenv("TRUST_PROXY_HEADERS", "true")
	if !LoadEnv().TrustProxyHeaders {
		t.Error("TRUST_PROXY_HEADERS=true not honoured")
	}
}

func TestOpenConnectionUnsupportedDriver(t *testing.T) {
	if _, err := OpenConnection(ENV{DBDriver: "oracle"}, zap.NewNop()); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestOpenConnectionSqlite(t *testing.T) {
	env := ENV{DBDriver: "sqlite", DBSqlitePath: t.TempDir() + "/rainy.db", DBMaxRetries: 1}
	db, err := OpenConnection(env, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenConnection: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	var fk int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		t.Fatalf("PRAGMA: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMySQLDialector(t *testing.T) {
	d, safe, err := dialector(ENV{DBDriver: "mysql", DBUser: "rainy", DBPassword: "p@ss:word", DBHost: "db", DBName: "catalog"})
	if err != nil {
		t.Fatal(err)
	}
	if d.Name() != "mysql" {
		t.Errorf("dialector = %s", d.Name())
	}
	if safe != "mysql://rainy@db:3306/catalog" {
		t.Errorf("safe DSN = %q", safe)
	}
	if strings.Contains(safe, "p@ss") {
		t.Error("safe DSN leaks the password")
	}
}
