package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"huegreet/internal/config"
)

func TestRecoverWritesReportAndExits(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var code int
	exitFn = func(c int) { code = c }
	t.Cleanup(func() { exitFn = os.Exit })

	func() {
		defer Recover()
		panic("boom")
	}()

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	cdir, err := config.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	ents, err := os.ReadDir(cdir)
	if err != nil {
		t.Fatalf("read config dir: %v", err)
	}
	var found string
	for _, e := range ents {
		if strings.HasPrefix(e.Name(), "crash-") && strings.HasSuffix(e.Name(), ".log") {
			found = filepath.Join(cdir, e.Name())
		}
	}
	if found == "" {
		t.Fatalf("no crash report written in %s", cdir)
	}
	b, err := os.ReadFile(found)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "Panic: boom") {
		t.Fatalf("report missing panic value: %q", string(b))
	}
}

func TestRecoverNoopWithoutPanic(t *testing.T) {
	exitFn = func(int) { t.Fatalf("exit called without a panic") }
	t.Cleanup(func() { exitFn = os.Exit })
	func() {
		defer Recover()
	}()
}
