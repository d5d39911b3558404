package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, wantPath string, result map[string]any) (*httptest.Server, *map[string]any) {
	t.Helper()

	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("path = %q, expected %q", r.URL.Path, wantPath)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, expected POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}))
	t.Cleanup(server.Close)

	return server, &gotBody
}

func TestRunCommand(t *testing.T) {
	server, gotBody := newTestServer(t, "/command", map[string]any{
		"return_code": 0,
		"stdout":      "hello\n",
		"stderr":      "",
	})

	client := NewClient(server.URL, "sess-1", false)
	result, err := client.RunCommand(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}

	if (*gotBody)["session_id"] != "sess-1" {
		t.Errorf("session_id = %v, expected sess-1", (*gotBody)["session_id"])
	}
	if (*gotBody)["command"] != "echo hello" {
		t.Errorf("command = %v, expected echo hello", (*gotBody)["command"])
	}
	if result["stdout"] != "hello\n" {
		t.Errorf("stdout = %v", result["stdout"])
	}
}

func TestReadFile(t *testing.T) {
	server, gotBody := newTestServer(t, "/read", map[string]any{"content": "file body"})

	client := NewClient(server.URL, "sess-2", false)
	result, err := client.ReadFile(context.Background(), "/etc/motd")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if (*gotBody)["session_id"] != "sess-2" {
		t.Errorf("session_id = %v, expected sess-2", (*gotBody)["session_id"])
	}
	if (*gotBody)["path"] != "/etc/motd" {
		t.Errorf("path = %v", (*gotBody)["path"])
	}
	if result["content"] != "file body" {
		t.Errorf("content = %v", result["content"])
	}
}

func TestWriteFile(t *testing.T) {
	server, gotBody := newTestServer(t, "/write", map[string]any{"size": 4})

	client := NewClient(server.URL, "sess-3", false)
	result, err := client.WriteFile(context.Background(), "/tmp/x", "data")
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if (*gotBody)["path"] != "/tmp/x" || (*gotBody)["content"] != "data" {
		t.Errorf("body = %v", *gotBody)
	}
	if result["size"] != float64(4) {
		t.Errorf("size = %v, expected 4", result["size"])
	}
}

func TestErrorStatusPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown session", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "sess-4", false)
	if _, err := client.RunCommand(context.Background(), "true"); err == nil {
		t.Error("expected error for non-200 status, got nil")
	}
}
