// Package apiclient is the outbound HTTP client for the controller's
// client-initiated endpoints. The agent's serve loop never uses it; it exists
// for operator tooling (the run/read/write CLI commands) driving a session
// from the outside.
package apiclient

import (
	"github.com/kaiobuu/kaioagent/util/rest"
)

type ApiClient struct {
	httpClient *rest.RESTClient
	sessionID  string
}

func NewClient(baseURL string, sessionID string, insecureSkipVerify bool) *ApiClient {
	return &ApiClient{
		httpClient: rest.NewClient(baseURL, insecureSkipVerify),
		sessionID:  sessionID,
	}
}

func (c *ApiClient) SetBaseUrl(baseURL string) *ApiClient {
	c.httpClient.SetBaseUrl(baseURL)
	return c
}
