package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantBase  string
		wantToken string
		wantErr   string
	}{
		{
			name:      "token in user",
			raw:       "https://s3cr3t@acme-admin.example.com",
			wantBase:  "https://acme-admin.example.com",
			wantToken: "s3cr3t",
		},
		{
			name:      "token in password",
			raw:       "https://:s3cr3t@acme-admin.example.com:8443/",
			wantBase:  "https://acme-admin.example.com:8443",
			wantToken: "s3cr3t",
		},
		{
			name:      "query and fragment dropped",
			raw:       "http://tok@localhost:3000/?x=1#frag",
			wantBase:  "http://localhost:3000",
			wantToken: "tok",
		},
		{
			name:    "missing credential",
			raw:     "https://acme-admin.example.com",
			wantErr: "missing access token",
		},
		{
			name:    "bad scheme",
			raw:     "ftp://tok@acme-admin.example.com",
			wantErr: "scheme must be http or https",
		},
		{
			name:    "missing host",
			raw:     "https://",
			wantErr: "missing host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := ParseURL(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, ep.BaseURL)
			assert.Equal(t, tt.wantToken, ep.AccessToken)
		})
	}
}

func TestParseURL_ErrorDoesNotLeakToken(t *testing.T) {
	_, err := ParseURL("ftp://s3cr3t@acme-admin.example.com")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cr3t")
}
