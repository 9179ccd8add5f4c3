package static

import (
	"io/fs"
	"testing"
)

func TestFSContainsShellStylesheet(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(FS, "shell.css")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("shell.css is empty")
	}
}
