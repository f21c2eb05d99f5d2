package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"go.elastic.co/apm/module/apmhttp"
	"go.uber.org/zap"
)

// maxErrorBody bytes of an error response kept for logging
const maxErrorBody = 512

// StatusError the upstream answered with a non-2xx status
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (se *StatusError) Error() string {
	if se.Body == "" {
		return fmt.Sprintf("%s %s: status %d", se.Method, se.URL, se.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", se.Method, se.URL, se.Code, se.Body)
}

// RESTClient read-only JSON client for upstream services
type RESTClient struct {
	baseURL string
	client  *http.Client
}

// NewRESTClient create a client rooted at baseURL, timeout <= 0 means no timeout
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  apmhttp.WrapClient(&http.Client{Timeout: timeout}),
	}
}

// GetJSON GET baseURL+path and decode the body into out. A non-empty token is
// sent as a bearer credential.
func (rc *RESTClient) GetJSON(ctx context.Context, path, token string, out interface{}) error {
	startTime := time.Now()
	url := rc.baseURL + path
	logger := logging.ExtractLoggerFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := rc.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	logger.Debug("", zap.String("http.upstream.url", url),
		zap.Int("http.upstream.status_code", res.StatusCode),
		zap.Duration("http.upstream.time", time.Since(startTime)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &StatusError{
			Method: http.MethodGet,
			URL:    url,
			Code:   res.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
