package appconfig

import (
	"time"

	"exusiai.dev/folio-stats/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated JSON log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// CORSAllowOrigins is the comma-separated list of origins allowed to call the API from a browser.
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging
	// (pprof, fgprof) and skip the rate limiter. See internal/server/httpserver/http.go for the details.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: jaeger, otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"jaeger"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// RedisURL is the URL of the Redis server used as a shared stats cache. Leaving this empty keeps
	// the cache in process memory. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// UpstreamURL is the LeetCode GraphQL endpoint.
	UpstreamURL string `required:"true" split_words:"true" default:"https://leetcode.com/graphql"`

	// UpstreamUserAgent is sent as the User-Agent of every upstream request.
	UpstreamUserAgent string `split_words:"true" default:"anuj-portfolio/1.0"`

	// UpstreamTimeout bounds a single upstream request. Zero leaves it to the transport defaults.
	UpstreamTimeout time.Duration `split_words:"true" default:"0s"`

	// UpstreamRetryAttempts is the total number of attempts for one upstream fetch.
	// The default of 1 surfaces a transient upstream failure immediately.
	UpstreamRetryAttempts uint `split_words:"true" default:"1"`

	// DefaultUsername is the LeetCode username served when a request does not name one.
	DefaultUsername string `required:"true" split_words:"true" default:"anujkarambalkar1504"`

	// StatsCacheTTL is how long a fetched stats record is considered fresh. It is also advertised
	// to intermediary caches through s-maxage and stale-while-revalidate.
	StatsCacheTTL time.Duration `required:"true" split_words:"true" default:"1h"`

	// WorkerEnabled is a flag to indicate whether to enable the cache warm-up worker.
	WorkerEnabled bool `split_words:"true"`

	// WorkerInterval describes the interval in-between warm-up refreshes of the default username.
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"55m"`

	// AdminKey is the bearer token used to authenticate the admin API. Leaving this empty disables the admin API.
	AdminKey string `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
