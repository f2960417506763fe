package deployments

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestComposeFileWiresServiceDependencies(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "docker-compose.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read compose file: %v", err)
	}
	text := string(content)

	requiredTokens := []string{
		"mysql:",
		"minio:",
		"stockpilot:",
		"STOCKPILOT_DB_DRIVER: mysql",
		"STOCKPILOT_ARCHIVE_ENDPOINT: minio:9000",
		"GEMINI_API_KEY:",
		"condition: service_healthy",
	}
	for _, token := range requiredTokens {
		if !strings.Contains(text, token) {
			t.Fatalf("compose file missing %q", token)
		}
	}
}

func TestComposeFileExposesAPIAndConsolePorts(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "docker-compose.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read compose file: %v", err)
	}
	text := string(content)

	for _, port := range []string{`"8080:8080"`, `"9000:9000"`, `"3306:3306"`} {
		if !strings.Contains(text, port) {
			t.Fatalf("compose file missing port mapping %s", port)
		}
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), ".."))
}
