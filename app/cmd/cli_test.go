package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"rainy"}, args...))
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := runCLI(t, "hash-password", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	hash := strings.TrimSpace(strings.TrimPrefix(out, "ADMIN_PASSWORD_HASH="))
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("hash does not match: %v (output %q)", err, out)
	}

	if _, err := runCLI(t, "hash-password"); err == nil {
		t.Error("expected an error without a password")
	}
}

func TestGenerateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.env")
	out, err := runCLI(t, "generate-keys", "--out", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "APP_AUTH_KEY=") || !strings.Contains(out, "APP_ENC_KEY=") {
		t.Errorf("output = %q", out)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, string(written)) {
		t.Errorf("file %q does not match printed keys %q", written, out)
	}
}

func TestDatabaseCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(dir, "rainy.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"migrate"}, "Migration complete"},
		{[]string{"create-sample-products"}, "Created product: Rainy FL 80"},
		{[]string{"create-sample-products"}, "Product already exists: Rainy FL 500"},
		{[]string{"fake-contacts", "-n", "3"}, "Created 3 fake contacts"},
		{[]string{"clear-sample-products"}, "Deleted 75 specifications and 5 'Rainy FL' products."},
		{[]string{"clear-sample-products"}, "No 'Rainy FL' products found."},
	}
	for _, step := range steps {
		out, err := runCLI(t, step.args...)
		if err != nil {
			t.Fatalf("%v: %v", step.args, err)
		}
		if !strings.Contains(out, step.want) {
			t.Errorf("%v: output %q does not contain %q", step.args, out, step.want)
		}
	}
}
