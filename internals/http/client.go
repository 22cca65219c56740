package http

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTimeout = 10
)

// RequestError is a failed backend call, normalized to the status code and the
// message extracted from the response body.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status code = %d", e.StatusCode)
	}
	return fmt.Sprintf("status code = %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the backend answered 404 or 406 (the single-object
// content negotiation failure the table API uses for a missing row).
func (e *RequestError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusNotAcceptable
}

// errorBody covers the error payload shapes of both backend services: the
// table API uses "message", the auth API uses "msg" or "error_description".
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if b.Msg != "" {
		return b.Msg
	}
	return b.ErrorDescription
}

type Client struct {
	conn    Connection
	logger  zerolog.Logger
	timeout time.Duration
}

func NewClient(url string, anonKey string, verifyCert bool) *Client {
	connection := &AnonConnection{verifyCert: verifyCert, anonKey: anonKey, url: url}
	return &Client{conn: connection, logger: zerolog.Nop(), timeout: DefaultTimeout * time.Second}
}

func NewSessionClient(url string, anonKey string, accessToken string, verifyCert bool) *Client {
	connection := &SessionConnection{verifyCert: verifyCert, anonKey: anonKey, accessToken: accessToken, url: url}
	return &Client{conn: connection, logger: zerolog.Nop(), timeout: DefaultTimeout * time.Second}
}

func (client *Client) SetLogger(logger zerolog.Logger) {
	client.logger = logger
}

// SetTimeout overrides the per-request timeout used when a call passes -1.
func (client *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		client.timeout = timeout
	}
}

// Ping checks the auth service health endpoint.
func (client *Client) Ping() error {
	resp, err := client.Get("/auth/v1/health", time.Duration(5*time.Second))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return errors.New(fmt.Sprintf("status code = %d", resp.StatusCode))
	}
	return nil
}

// CheckConnection verifies that the table API accepts the configured key.
func (client *Client) CheckConnection() error {
	resp, err := client.Get("/rest/v1/", time.Duration(5*time.Second))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return errors.New(fmt.Sprintf("status code = %d", resp.StatusCode))
	}
	return nil
}

func (client *Client) GetAndParse(path string, target interface{}) error {
	resp, err := client.Get(path, -1)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

func (client *Client) PostAndParse(path string, body io.Reader, target interface{}) error {
	resp, err := client.Post(path, body, -1)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

func (client *Client) PatchAndParse(path string, body io.Reader, target interface{}) error {
	resp, err := client.Patch(path, body, -1)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

// PostAndCheck issues a POST and discards the response body. Used for auth
// endpoints that answer with an empty object.
func (client *Client) PostAndCheck(path string, body io.Reader) error {
	resp, err := client.Post(path, body, -1)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.checkStatus(resp, path)
}

// DeleteAndCheck issues a DELETE and discards the response body.
func (client *Client) DeleteAndCheck(path string) error {
	resp, err := client.Delete(path, -1)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.checkStatus(resp, path)
}

func (client *Client) checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 400 {
		return client.requestError(resp, path)
	}
	return nil
}

func (client *Client) parseResponse(resp *http.Response, target interface{}, path string) error {
	if resp.StatusCode >= 400 {
		return client.requestError(resp, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(body, &target)
	if err != nil {
		return err
	}
	return nil
}

func (client *Client) requestError(resp *http.Response, path string) error {
	var body errorBody
	raw, err := io.ReadAll(resp.Body)
	if err == nil {
		_ = json.Unmarshal(raw, &body)
	}
	reqErr := &RequestError{StatusCode: resp.StatusCode, Message: body.text()}
	client.logger.Warn().Str("path", path).Int("status", resp.StatusCode).Str("message", body.text()).Msg("backend request failed")
	return reqErr
}

func (client Client) GetUrl(path string) string {
	u, err := url.Parse(client.conn.getUrl())
	if err != nil {
		return client.conn.getUrl() + path
	}
	parsedPath, err := url.Parse(path)
	if err != nil {
		return client.conn.getUrl() + path
	}

	resolvedURL := u.ResolveReference(parsedPath).String()
	return resolvedURL
}

func handleNoCertificateCheck(check bool) {
	if !check {
		http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
}

func (client *Client) Get(path string, timeout time.Duration) (*http.Response, error) {
	return client.do("GET", path, nil, timeout)
}

func (client *Client) Post(path string, body io.Reader, timeout time.Duration) (*http.Response, error) {
	return client.do("POST", path, body, timeout)
}

func (client *Client) Patch(path string, body io.Reader, timeout time.Duration) (*http.Response, error) {
	return client.do("PATCH", path, body, timeout)
}

func (client *Client) Delete(path string, timeout time.Duration) (*http.Response, error) {
	return client.do("DELETE", path, nil, timeout)
}

func (client *Client) do(method string, path string, body io.Reader, timeout time.Duration) (*http.Response, error) {
	if client.conn != nil {
		handleNoCertificateCheck(client.conn.verifyCertificate())
	}
	url := client.GetUrl(path)
	if timeout == -1 {
		timeout = client.timeout
	}
	httpClient := &http.Client{
		Timeout: timeout,
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	if client.conn != nil {
		for _, header := range client.conn.headers() {
			req.Header.Set(header.Key, header.Value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if method == "POST" || method == "PATCH" {
		// Ask the table API to return the affected rows.
		req.Header.Set("Prefer", "return=representation")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		client.logger.Error().Str("method", method).Str("path", path).Err(err).Msg("backend request did not complete")
		return nil, err
	}
	return resp, err
}

// JSONBody marshals v for use as a request body.
func JSONBody(v interface{}) (io.Reader, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}
