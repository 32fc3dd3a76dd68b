package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-ideaform/internal/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// isolated points config lookups at an empty directory.
func isolated(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{"--config", filepath.Join(dir, "ideaform.yaml"), "--env-file", filepath.Join(dir, ".env")}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Version:    dev") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCatalogLint_Embedded(t *testing.T) {
	out, _, err := run(t, append(isolated(t), "catalog", "lint")...)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if !strings.Contains(out, "catalogs ok") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCatalogLint_ReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("form:\n  title: Ideas\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	_, stderr, err := run(t, append(isolated(t), "catalog", "lint", path)...)
	if err == nil {
		t.Fatalf("expected lint failure")
	}
	if !strings.Contains(stderr, path+": ") {
		t.Fatalf("expected violations prefixed with the file, got %q", stderr)
	}
	if strings.Count(stderr, "\n") < 2 {
		t.Fatalf("expected one line per problem, got %q", stderr)
	}
}

func TestContract(t *testing.T) {
	out, _, err := run(t, append(isolated(t), "contract")...)
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	if !strings.Contains(out, "/api/submit-idea:") {
		t.Fatalf("expected the OpenAPI document, got %q", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	args := isolated(t)
	path := args[1]

	if _, _, err := run(t, append(args, "config", "init")...); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, _, err := run(t, append(args, "config", "init")...); err == nil {
		t.Fatalf("expected init to refuse overwriting %s", path)
	}

	t.Setenv("IDEAFORM_SERVER_ADDR", ":9999")
	out, _, err := run(t, append(args, "--log-level", "debug", "config", "show")...)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, fragment := range []string{"9999", "level: debug", config.Defaults().Server.BasePath} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}

func TestPrompt_RejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, append(isolated(t), "prompt", "--format", "xml")...)
	if err == nil {
		t.Fatalf("expected an unknown format error")
	}
}
