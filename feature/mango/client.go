package mango

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"mango-sync/core/reconcile"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response body ends up in the error.
const maxErrorBody = 4 << 10

// Client fetches incoming lines from the Mango Office VPBX API.
// Each Fetch issues exactly one request; there are no retries.
type Client struct {
	apiKey   string
	salt     string
	url      string
	http     *http.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClient creates a client. A nil logger discards output.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	v := validator.New()
	// Report wire field names (scheme_id) rather than Go names (SchemeID).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Client{
		apiKey:   cfg.APIKey,
		salt:     cfg.Salt,
		url:      cfg.APIURL,
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
		validate: v,
		logger:   logger,
	}
}

// Fetch requests the full line list. Any returned error is a *FetchError.
func (c *Client) Fetch(ctx context.Context) (*reconcile.Snapshot, error) {
	// The payload bytes are signed, so they must be exactly what is sent: "{}".
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return nil, &FetchError{Kind: KindRequest, Err: err}
	}

	form := url.Values{}
	form.Set("vpbx_api_key", c.apiKey)
	form.Set("sign", Sign(c.apiKey, c.salt, string(payload)))
	form.Set("json", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &FetchError{Kind: KindRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Info("Request to Mango Office API", zap.String("url", c.url))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindRequest, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Info("API response status", zap.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Kind:   KindAPI,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindRequest, Err: fmt.Errorf("read body: %w", err)}
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &FetchError{Kind: KindParse, Err: err}
	}
	if err := c.validate.Struct(&parsed); err != nil {
		return nil, &FetchError{Kind: KindParse, Err: err}
	}

	c.logger.Info("Fetched data", zap.Int("result", *parsed.Result), zap.Int("lines", len(parsed.Lines)))

	return parsed.snapshot(), nil
}
