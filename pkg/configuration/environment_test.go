package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "CHECKBOOK_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "etl")
	requireMkdirAll(t, sub)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("CHECKBOOK_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("CHECKBOOK_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from repo root, got %q", got)
	}
}

func TestLoadEnv_PrefersWorkingDirectory(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env"), "CHECKBOOK_TEST_ENV_PRECEDENCE=root\n")

	sub := filepath.Join(tmp, "internal", "payroll")
	requireMkdirAll(t, sub)
	requireWriteFile(t, filepath.Join(sub, ".env"), "CHECKBOOK_TEST_ENV_PRECEDENCE=cwd\n")

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("CHECKBOOK_TEST_ENV_PRECEDENCE")

	n, err := LoadEnv([]string{".env"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("CHECKBOOK_TEST_ENV_PRECEDENCE"); got != "cwd" {
		t.Fatalf("expected working directory env file to win, got %q", got)
	}
}

func TestLogrusLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent": logrus.PanicLevel,
		"error":  logrus.ErrorLevel,
		"warn":   logrus.WarnLevel,
		"info":   logrus.InfoLevel,
		"debug":  logrus.DebugLevel,
		"bogus":  logrus.InfoLevel,
		"":       logrus.InfoLevel,
	}
	for in, want := range cases {
		c := &Configuration{LogLevel: in}
		if got := c.LogrusLogLevel(); got != want {
			t.Errorf("LogrusLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConnectionString(t *testing.T) {
	d := &DatabaseOptions{
		Name:     "checkbook",
		Host:     "db.local",
		Port:     "5433",
		User:     "etl",
		Password: "secret",
	}
	want := "host=db.local port=5433 user=etl dbname=checkbook password=secret sslmode=disable"
	if got := d.ConnectionString(); got != want {
		t.Fatalf("ConnectionString() = %q, want %q", got, want)
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
