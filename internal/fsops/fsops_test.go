package fsops_test

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/temirov/llm-clarify/internal/fsops"
)

func TestWriteFileAtomic_InMemory(t *testing.T) {
	mem := fsops.NewMem()
	ops := fsops.NewOps(mem)

	target := "/out/nested/request.json"
	if err := ops.WriteFileAtomic(target, []byte(`{"query":"q"}`), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if exists, _ := afero.Exists(mem.Fs, target); !exists {
		t.Fatalf("target should exist after write")
	}
	if exists, _ := afero.Exists(mem.Fs, target+".tmp"); exists {
		t.Fatalf("temporary file should be renamed away")
	}

	data, err := mem.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(data) != `{"query":"q"}` {
		t.Fatalf("unexpected content %q", string(data))
	}

	// Overwrite keeps a single file
	if err := ops.WriteFileAtomic(target, []byte("second"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err = mem.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", string(data))
	}
}

func TestEnsureDir_CreatesParent(t *testing.T) {
	mem := fsops.NewMem()
	ops := fsops.NewOps(mem)

	if err := ops.EnsureDir("/a/b/c.txt"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := mem.Fs.Stat("/a/b")
	if err != nil {
		t.Fatalf("stat parent: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected /a/b to be a directory")
	}
}
