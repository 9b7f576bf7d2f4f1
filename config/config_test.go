package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/agentswarm/provider"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	return path
}

func TestLoadFilesDefaults(t *testing.T) {
	cfg, err := LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "openai" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	if cfg.MaxTurns != 0 {
		t.Errorf("expected unbounded turns by default, got %d", cfg.MaxTurns)
	}
}

func TestLoadFilesOverlay(t *testing.T) {
	dir := t.TempDir()

	user := writeConfig(t, dir, "user.yaml", `
provider: anthropic
model: claude-3-5-sonnet-20241022
max_turns: 5
log_level: debug
`)

	project := writeConfig(t, dir, "project.yaml", `
model: claude-3-5-haiku-20241022
log_format: json
`)

	cfg, err := LoadFiles(user, project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Project file wins per field; fields it omits keep the user values.
	if cfg.Model != "claude-3-5-haiku-20241022" {
		t.Errorf("project model should win, got %q", cfg.Model)
	}

	if cfg.Provider != "anthropic" || cfg.MaxTurns != 5 || cfg.LogLevel != "debug" {
		t.Errorf("user values lost: %+v", cfg)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("project log format lost: %q", cfg.LogFormat)
	}
}

func TestLoadFilesSkipsMissing(t *testing.T) {
	dir := t.TempDir()

	project := writeConfig(t, dir, "project.yaml", "provider: ollama\n")

	cfg, err := LoadFiles(filepath.Join(dir, "does-not-exist.yaml"), project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "ollama" {
		t.Errorf("unexpected provider: %q", cfg.Provider)
	}
}

func TestLoadFilesRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()

	broken := writeConfig(t, dir, "broken.yaml", "provider: [unclosed\n")

	if _, err := LoadFiles(broken); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadFilesMCPServers(t *testing.T) {
	dir := t.TempDir()

	path := writeConfig(t, dir, "config.yaml", `
mcp_servers:
  - name: files
    command: mcp-files
    args: ["--root", "/tmp"]
`)

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.MCPServers) != 1 {
		t.Fatalf("expected 1 server, got %d", len(cfg.MCPServers))
	}

	server := cfg.MCPServers[0]
	if server.Name != "files" || server.Command != "mcp-files" || len(server.Args) != 2 {
		t.Errorf("unexpected server: %+v", server)
	}
}

func TestProviderConfig(t *testing.T) {
	cfg := &Config{
		Provider: "bedrock",
		Model:    "anthropic.claude-3-5-sonnet-20241022-v2:0",
		Region:   "eu-central-1",
	}

	pc := cfg.ProviderConfig()
	if pc.Type != provider.TypeBedrock {
		t.Errorf("unexpected type: %q", pc.Type)
	}

	if pc.Model != cfg.Model || pc.Region != cfg.Region {
		t.Errorf("fields not forwarded: %+v", pc)
	}
}

func TestConfigLogger(t *testing.T) {
	cfg := Default()

	if cfg.Logger() == nil {
		t.Fatal("expected logger")
	}
}
