package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"snipelabel/internal/config"
	"snipelabel/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	serverURL  string
	baseDir    string
}

const cliAssetRecord = `{
	"id": 400,
	"asset_tag": "00400",
	"serial": "SN-0400",
	"status_label": {"id": 2, "name": "Ready to Deploy"}
}`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, cliAssetRecord)
	}))
	t.Cleanup(server.Close)

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.SnipeIT.URL = server.URL
	cfgVal.SnipeIT.APIKey = "test-token"
	cfgVal.Paths.TemplatePath = testsupport.BuildTemplateArchive(t, base)
	cfgVal.Paths.OutputPath = filepath.Join(base, "label.odt")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "error"

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, &cfgVal)

	return &cliTestEnv{
		cfg:        &cfgVal,
		configPath: configPath,
		serverURL:  server.URL,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal test config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestGenerateWritesLabelAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"generate", "--type", "assets", "--item-num", "400"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "Wrote "+env.cfg.Paths.OutputPath)
	requireContains(t, out, env.serverURL+"/hardware/400")

	if _, err := os.Stat(env.cfg.Paths.OutputPath); err != nil {
		t.Fatalf("expected label at %s: %v", env.cfg.Paths.OutputPath, err)
	}

	out, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "400")
	requireContains(t, out, env.cfg.Paths.OutputPath)
}

func TestGenerateRequiresItemNumberWhenNotInteractive(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, []string{"generate", "--type", "assets"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "item id") {
		t.Fatalf("expected item id error, got %v", err)
	}
}

func TestGenerateRejectsUnknownItemType(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, []string{"generate", "--type", "printers", "--item-num", "1"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "item type") {
		t.Fatalf("expected item type error, got %v", err)
	}
}

func TestFieldsListsFlattenedRecord(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"fields", "--type", "assets", "--item-num", "400"}, env.configPath)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	requireContains(t, out, "{{asset_tag}}")
	requireContains(t, out, "00400")
	requireContains(t, out, "{{status_label_name}}")
	requireContains(t, out, "Ready to Deploy")
}

func TestHistoryEmptyStore(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No labels generated yet")
}
