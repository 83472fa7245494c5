// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRouterDuplicateRoute(t *testing.T) {
	require := require.New(t)
	r := newRouter()

	require.NoError(r.AddRouter("/ext/amm", "/ammapi", okHandler()))
	require.Error(r.AddRouter("/ext/amm", "/ammapi", okHandler()))
	require.NoError(r.AddRouter("/ext/amm", "/other", okHandler()))

	endpoints, err := r.Endpoints("/ext/amm")
	require.NoError(err)
	require.ElementsMatch([]string{"/ammapi", "/other"}, endpoints)
	_, err = r.Endpoints("/ext/missing")
	require.ErrorIs(err, errUnknownBaseURL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ext/amm/ammapi", nil))
	require.Equal(http.StatusOK, rec.Code)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ext/amm/missing", nil))
	require.Equal(http.StatusNotFound, rec.Code)
}

func TestAllowedHosts(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		host     string
		expected int
	}{
		{
			name:     "wildcard",
			allowed:  []string{"*"},
			host:     "example.com",
			expected: http.StatusOK,
		},
		{
			name:     "ip",
			allowed:  []string{"localhost"},
			host:     "127.0.0.1:9650",
			expected: http.StatusOK,
		},
		{
			name:     "listed host with port",
			allowed:  []string{"LocalHost"},
			host:     "localhost:9650",
			expected: http.StatusOK,
		},
		{
			name:     "unlisted host",
			allowed:  []string{"localhost"},
			host:     "example.com",
			expected: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := filterInvalidHosts(okHandler(), tt.allowed)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestServerRoutes(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	config := NewDefaultConfig()
	config.ShutdownTimeout = time.Second
	s := New(logging.NoLog{}, listener, config)
	require.Equal(listener.Addr(), s.Addr())
	require.NoError(s.AddRoute(okHandler(), "ext", "/ammapi"))
	require.Error(s.AddRoute(okHandler(), "ext", "/ammapi"))
	endpoints, err := s.Endpoints("ext")
	require.NoError(err)
	require.Equal([]string{"/ammapi"}, endpoints)

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	resp, err := http.Post("http://"+s.Addr().String()+"/ext/ammapi", "application/json", nil)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusOK, resp.StatusCode)

	require.NoError(s.Shutdown())
	require.ErrorIs(<-done, http.ErrServerClosed)
}
