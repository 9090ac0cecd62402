package leetcode

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"exusiai.dev/folio-stats/internal/app/appconfig"
	"exusiai.dev/folio-stats/internal/pkg/observability"
)

const (
	upstreamReferer = "https://leetcode.com/"
	upstreamOrigin  = "https://leetcode.com"
)

var tracer = otel.Tracer("exusiai.dev/folio-stats/internal/core/leetcode")

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data *RawResponse `json:"data"`
}

// Repo talks to the LeetCode GraphQL endpoint.
type Repo struct {
	client    *http.Client
	url       string
	userAgent string
	attempts  uint
	now       func() time.Time
}

func NewRepo(conf *appconfig.Config) *Repo {
	attempts := conf.UpstreamRetryAttempts
	if attempts == 0 {
		// retry-go treats 0 as "retry forever"
		attempts = 1
	}
	return &Repo{
		client:    &http.Client{Timeout: conf.UpstreamTimeout},
		url:       conf.UpstreamURL,
		userAgent: conf.UpstreamUserAgent,
		attempts:  attempts,
		now:       time.Now,
	}
}

// FetchStats runs the userStats query for username and the current calendar year.
// A response without data yields an empty RawResponse.
func (r *Repo) FetchStats(ctx context.Context, username string) (*RawResponse, error) {
	ctx, span := tracer.Start(ctx, "leetcode.graphql")
	defer span.End()
	span.SetAttributes(attribute.String("leetcode.username", username))

	body, err := json.Marshal(graphqlRequest{
		Query: userStatsQuery,
		Variables: map[string]any{
			"username": username,
			"year":     r.now().Year(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "leetcode: failed to marshal graphql request")
	}

	var (
		raw     *RawResponse
		lastErr error
	)
	err = retry.Do(
		func() error {
			raw, lastErr = r.do(ctx, body)
			return lastErr
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			if n+1 >= r.attempts {
				return
			}
			log.Warn().
				Err(err).
				Str("evt.name", "leetcode.graphql.retry").
				Uint("attempt", n+2).
				Str("username", username).
				Msg("retrying leetcode graphql request")
		}),
	)
	if lastErr != nil {
		err = lastErr
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return raw, nil
}

func (r *Repo) do(ctx context.Context, body []byte) (raw *RawResponse, err error) {
	start := time.Now()
	defer func() {
		observability.UpstreamRequestDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamTransportError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Referer", upstreamReferer)
	req.Header.Set("Origin", upstreamOrigin)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &UpstreamTransportError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamTransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamHTTPError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(b),
		}
	}

	if messages := gjson.GetBytes(b, "errors.#.message"); messages.IsArray() && len(messages.Array()) > 0 {
		log.Warn().
			Str("evt.name", "leetcode.graphql.errors").
			Str("errors", messages.Raw).
			Msg("leetcode graphql returned errors alongside data")
	}

	var gr graphqlResponse
	if err := json.Unmarshal(b, &gr); err != nil {
		return nil, &UpstreamTransportError{Op: "decode response", Err: err}
	}
	if gr.Data == nil {
		return &RawResponse{}, nil
	}
	return gr.Data, nil
}

// statusText returns the reason phrase, e.g. "Service Unavailable" for "503 Service Unavailable".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

// retryable excludes client errors, which repeat identically.
func retryable(err error) bool {
	var httpErr *UpstreamHTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func outcome(err error) string {
	var httpErr *UpstreamHTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &httpErr):
		return "http_error"
	default:
		return "transport_error"
	}
}
