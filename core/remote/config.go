package remote

// Config holds connection settings for one remote store.
type Config struct {
	// URL is the admin endpoint with the access token in its user-info,
	// e.g. https://TOKEN@acme-admin.example.com.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// InsecureSkipVerify disables TLS certificate verification (self-signed on-prem installs).
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
}
