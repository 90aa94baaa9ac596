package azurerest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func NewService(credential azcore.TokenCredential, opts *Options) *service {
	if opts == nil {
		opts = &Options{}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = ManagementBaseURL
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = 6
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	return &service{
		httpClient: &http.Client{Timeout: timeout},
		credential: credential,
		baseURL:    baseURL,
		maxRetries: maxRetries,
		sleep:      sleep,
		now:        time.Now,
	}
}

func (s *service) BaseURL() string {
	return s.baseURL
}

// Call issues one authenticated request and returns the response body.
// Timeouts and 429/500/502/503/504 are retried with backoff up to the retry
// ceiling; any other non-2xx status fails immediately with a *StatusError.
func (s *service) Call(ctx context.Context, method, url string, body interface{}) ([]byte, error) {
	token, err := s.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	if strings.HasPrefix(url, "/") {
		url = s.baseURL + url
	}

	attempt := 0
	for {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			if !isTimeout(err) {
				return nil, fmt.Errorf("request failed: %w", err)
			}
			attempt++
			if attempt > s.maxRetries {
				return nil, fmt.Errorf("request timed out after %d retries: %w", s.maxRetries, err)
			}
			s.backoff("", attempt)
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if retryableStatus[resp.StatusCode] {
			attempt++
			if attempt > s.maxRetries {
				return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(data)}
			}
			s.backoff(resp.Header.Get("Retry-After"), attempt)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(data)}
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response: %w", readErr)
		}
		return data, nil
	}
}

// Paginate follows nextLink until absent, passing each page's items to fn in
// server order. Dedup across pages is the caller's concern.
func (s *service) Paginate(ctx context.Context, url string, fn func(item json.RawMessage) error) error {
	for url != "" {
		data, err := s.Call(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		var p page
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to decode page: %w", err)
		}
		for _, item := range p.Value {
			if err := fn(item); err != nil {
				return err
			}
		}
		url = p.NextLink
	}
	return nil
}

// backoff honors Retry-After clamped to [1,60] seconds, otherwise sleeps
// min(2^attempt, 30) seconds
func (s *service) backoff(retryAfter string, attempt int) {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil {
			if secs < 1 {
				secs = 1
			}
			if secs > 60 {
				secs = 60
			}
			s.sleep(time.Duration(secs) * time.Second)
			return
		}
	}
	s.sleep(time.Duration(math.Min(math.Pow(2, float64(attempt)), 30)) * time.Second)
}

func (s *service) bearerToken(ctx context.Context) (string, error) {
	// refresh a little early so a long cost query never runs into expiry
	if s.token.Token != "" && s.now().Add(2*time.Minute).Before(s.token.ExpiresOn) {
		return s.token.Token, nil
	}

	token, err := s.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{tokenScope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to acquire token: %w", err)
	}
	s.token = token
	return token.Token, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
