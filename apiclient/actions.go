package apiclient

import (
	"context"
	"net/http"
)

type RunCommandRequest struct {
	SessionID string `json:"session_id"`
	Command   string `json:"command"`
}

type ReadFileRequest struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

type WriteFileRequest struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Content   string `json:"content"`
}

// RunCommand asks the controller to run a command in the session. The result
// mapping mirrors what the agent produced: return_code, stdout and stderr, or
// an error key.
func (c *ApiClient) RunCommand(ctx context.Context, command string) (map[string]any, error) {
	result := map[string]any{}
	_, err := c.httpClient.Post(ctx, "/command", &RunCommandRequest{
		SessionID: c.sessionID,
		Command:   command,
	}, &result, http.StatusOK)
	return result, err
}

// ReadFile asks the controller to read a file in the session.
func (c *ApiClient) ReadFile(ctx context.Context, path string) (map[string]any, error) {
	result := map[string]any{}
	_, err := c.httpClient.Post(ctx, "/read", &ReadFileRequest{
		SessionID: c.sessionID,
		Path:      path,
	}, &result, http.StatusOK)
	return result, err
}

// WriteFile asks the controller to write a file in the session.
func (c *ApiClient) WriteFile(ctx context.Context, path string, content string) (map[string]any, error) {
	result := map[string]any{}
	_, err := c.httpClient.Post(ctx, "/write", &WriteFileRequest{
		SessionID: c.sessionID,
		Path:      path,
		Content:   content,
	}, &result, http.StatusOK)
	return result, err
}
