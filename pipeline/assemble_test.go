package pipeline

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"infogen/config"
)

func assembleConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(dir, "records.db")
	cfg.Artifacts.StorageURL = filepath.Join(dir, "artifacts")
	cfg.Artifacts.SigningKeyEnv = "INFOGEN_TEST_SIGNING_KEY"
	cfg.LLM.CacheTTLSeconds = 60
	return cfg
}

func TestFromConfig(t *testing.T) {
	cfg := assembleConfig(t)
	t.Setenv("INFOGEN_TEST_SIGNING_KEY", "unit-test-key")

	p, err := FromConfig(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFromConfigMissingSigningKey(t *testing.T) {
	cfg := assembleConfig(t)
	t.Setenv("INFOGEN_TEST_SIGNING_KEY", "")

	_, err := FromConfig(cfg, nil)
	if err == nil {
		t.Fatal("FromConfig() = nil error, want refusal without a signing key")
	}
	if !strings.Contains(err.Error(), "INFOGEN_TEST_SIGNING_KEY") {
		t.Errorf("err = %v, want the env var named", err)
	}
}
