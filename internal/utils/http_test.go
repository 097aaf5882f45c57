package utils

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "Basic ID",
			id:   "length",
			want: "length",
		},
		{
			name: "ID with JSON extension",
			id:   "utility-tools.json",
			want: "utility-tools",
		},
		{
			name: "ID with multiple dots",
			id:   "789.data.json",
			want: "789.data",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.Handler(http.MethodGet, "/api/test/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "id")
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/test/"+tc.id, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result, "ExtractIDFromParams should correctly extract and clean the ID")
		})
	}
}

func TestClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  []string
		trusted    []netip.Prefix
		want       string
	}{
		{"remote addr", "192.0.2.10:52311", nil, nil, "192.0.2.10"},
		{"forwarded ignored without trusted proxies", "192.0.2.10:52311", []string{"203.0.113.7"}, nil, "192.0.2.10"},
		{"forwarded ignored from untrusted peer", "198.51.100.4:1000", []string{"203.0.113.7"}, trusted, "198.51.100.4"},
		{"trusted peer", "10.1.2.3:1000", []string{"203.0.113.7"}, trusted, "203.0.113.7"},
		{"spoofed leftmost hop", "10.1.2.3:1000", []string{"1.1.1.1, 203.0.113.7"}, trusted, "203.0.113.7"},
		{"chain of trusted proxies", "192.0.2.1:1000", []string{"203.0.113.7, 10.0.0.5", "10.9.9.9"}, trusted, "203.0.113.7"},
		{"all hops trusted", "10.1.2.3:1000", []string{"10.0.0.7"}, trusted, "10.0.0.7"},
		{"trusted peer without header", "10.1.2.3:1000", nil, trusted, "10.1.2.3"},
		{"ipv4-mapped peer", "[::ffff:10.1.2.3]:1000", []string{"203.0.113.7"}, trusted, "203.0.113.7"},
		{"no port", "unix-socket", nil, trusted, "unix-socket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for _, v := range tt.forwarded {
				req.Header.Add("X-Forwarded-For", v)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trusted))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{" 10.0.0.0/8", "192.0.2.1", "", "2001:db8::/32", "10.1.2.3/8"})
	require.NoError(t, err)
	require.Len(t, prefixes, 4)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.1/32", prefixes[1].String())
	assert.Equal(t, "2001:db8::/32", prefixes[2].String())
	assert.Equal(t, "10.0.0.0/8", prefixes[3].String())

	prefixes, err = ParseTrustedProxies(nil)
	require.NoError(t, err)
	assert.Empty(t, prefixes)

	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/40"})
	assert.Error(t, err)
}
