package fileaccess

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteThenRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain text", content: "hello world"},
		{name: "empty content", content: ""},
		{name: "multiline", content: "line one\nline two\n"},
		{name: "unicode", content: "héllo wörld"},
	}

	accessor := New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file.txt")

			wrote := accessor.Write(path, tt.content)
			if msg, ok := wrote["error"]; ok {
				t.Fatalf("Write returned error: %v", msg)
			}
			if wrote["size"] != len(tt.content) {
				t.Errorf("size = %v, expected %d", wrote["size"], len(tt.content))
			}

			read := accessor.Read(path)
			if msg, ok := read["error"]; ok {
				t.Fatalf("Read returned error: %v", msg)
			}
			if read["content"] != tt.content {
				t.Errorf("content = %q, expected %q", read["content"], tt.content)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	result := New().Read(filepath.Join(t.TempDir(), "nonexistent"))

	if _, ok := result["error"]; !ok {
		t.Errorf("Read of missing file = %v, expected error key", result)
	}
	if _, ok := result["content"]; ok {
		t.Error("Read of missing file must not carry content")
	}
}

func TestWriteToMissingDirectory(t *testing.T) {
	result := New().Write(filepath.Join(t.TempDir(), "missing", "file.txt"), "data")

	if _, ok := result["error"]; !ok {
		t.Errorf("Write into missing directory = %v, expected error key", result)
	}
}

func TestWriteOverwrites(t *testing.T) {
	accessor := New()
	path := filepath.Join(t.TempDir(), "file.txt")

	accessor.Write(path, "first version")
	accessor.Write(path, "second")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, expected second", data)
	}
}
