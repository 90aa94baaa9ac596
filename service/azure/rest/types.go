package azurerest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ManagementBaseURL is the ARM endpoint every query in this tool targets
const ManagementBaseURL = "https://management.azure.com"

const tokenScope = "https://management.azure.com/.default"

type service struct {
	httpClient *http.Client
	credential azcore.TokenCredential
	baseURL    string
	maxRetries int

	// injectable so tests run without wall-clock sleeps
	sleep func(time.Duration)
	now   func() time.Time

	token azcore.AccessToken
}

type RestService interface {
	Call(ctx context.Context, method, url string, body interface{}) ([]byte, error)
	Paginate(ctx context.Context, url string, fn func(item json.RawMessage) error) error
	BaseURL() string
}

// Options tunes the client; zero values fall back to defaults
type Options struct {
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
	Sleep      func(time.Duration)
}

// StatusError reports a non-2xx response that was either not retryable or
// still failing after the retry ceiling
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// page is the shape every paginated ARM listing shares
type page struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"nextLink"`
}
