package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// MigrationsQRC is a descriptor laid out the way Qt Creator writes one.
const MigrationsQRC = `<RCC>
    <qresource prefix="/">
        <file>migrations/20190705171029-init.sql</file>
        <file>migrations/20190716190100-add-servers.sql</file>
    </qresource>
</RCC>
`

// WriteDescriptor stores content as migrations.qrc in a fresh temp directory
// and returns its path.
func WriteDescriptor(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "migrations.qrc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
