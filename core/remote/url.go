package remote

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingCredential is returned when a store URL carries no access token.
var ErrMissingCredential = errors.New("missing access token in URL user-info")

// Endpoint is a parsed store URL: the base admin URL and the access token it carried.
type Endpoint struct {
	BaseURL     string
	AccessToken string
}

// ParseURL splits a store URL into its endpoint and the credential embedded in its user-info.
// The token is read from the user component, falling back to the password component.
func ParseURL(raw string) (Endpoint, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid store URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("invalid store URL for host %q: scheme must be http or https", u.Host)
	}
	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("invalid store URL: missing host")
	}

	var token string
	if u.User != nil {
		token = u.User.Username()
		if token == "" {
			token, _ = u.User.Password()
		}
	}
	if token == "" {
		return Endpoint{}, ErrMissingCredential
	}

	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return Endpoint{
		BaseURL:     strings.TrimRight(u.String(), "/"),
		AccessToken: token,
	}, nil
}
