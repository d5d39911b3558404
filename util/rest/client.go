package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kaiobuu/kaioagent/build"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgPack = "application/msgpack"
)

type RESTClient struct {
	baseURL     string
	userAgent   string
	contentType string
	HTTPClient  *http.Client
}

func NewClient(baseURL string, insecureSkipVerify bool) *RESTClient {
	restClient := &RESTClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		userAgent:   "kaioagent v" + build.Version,
		contentType: ContentTypeJSON,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	restClient.HTTPClient.Transport = &http.Transport{
		TLSClientConfig:    &tls.Config{InsecureSkipVerify: insecureSkipVerify},
		IdleConnTimeout:    30 * time.Second,
		DisableCompression: true,
	}

	return restClient
}

func (c *RESTClient) SetContentType(contentType string) *RESTClient {
	c.contentType = contentType
	return c
}

func (c *RESTClient) SetUserAgent(userAgent string) *RESTClient {
	c.userAgent = userAgent
	return c
}

func (c *RESTClient) SetBaseUrl(baseURL string) *RESTClient {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *RESTClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, application/msgpack")
	req.Header.Set("Content-Type", c.contentType)
	req.Header.Set("User-Agent", c.userAgent)
}

func (c *RESTClient) Get(ctx context.Context, path string, response interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}

	c.setHeaders(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if resp.Header.Get("Content-Type") == ContentTypeMsgPack {
		err = msgpack.NewDecoder(resp.Body).Decode(response)
	} else {
		err = json.NewDecoder(resp.Body).Decode(response)
	}
	return resp.StatusCode, err
}

func (c *RESTClient) SendData(ctx context.Context, method string, path string, request interface{}, response interface{}, successCode int) (int, error) {
	var data []byte
	var err error

	if c.contentType == ContentTypeMsgPack {
		data, err = msgpack.Marshal(request)
	} else {
		data, err = json.Marshal(request)
	}
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	c.setHeaders(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != successCode {

		// Get the body as a string and wrap in the error message
		var bodyBytes []byte
		if resp.Body != nil {
			bodyBytes, _ = io.ReadAll(resp.Body)
		}
		bodyString := string(bodyBytes)

		log.Debug().Msgf("rest: %s, status: %d, error: %s", path, resp.StatusCode, bodyString)
		return resp.StatusCode, fmt.Errorf("unexpected status code: %d, %s", resp.StatusCode, bodyString)
	}

	if response == nil {
		return resp.StatusCode, nil
	}

	if resp.Header.Get("Content-Type") == ContentTypeMsgPack {
		err = msgpack.NewDecoder(resp.Body).Decode(response)
	} else {
		err = json.NewDecoder(resp.Body).Decode(response)
	}
	return resp.StatusCode, err
}

func (c *RESTClient) Post(ctx context.Context, path string, request interface{}, response interface{}, successCode int) (int, error) {
	return c.SendData(ctx, http.MethodPost, path, request, response, successCode)
}

func (c *RESTClient) Put(ctx context.Context, path string, request interface{}, response interface{}, successCode int) (int, error) {
	return c.SendData(ctx, http.MethodPut, path, request, response, successCode)
}

func (c *RESTClient) Delete(ctx context.Context, path string, request interface{}, response interface{}, successCode int) (int, error) {
	return c.SendData(ctx, http.MethodDelete, path, request, response, successCode)
}
