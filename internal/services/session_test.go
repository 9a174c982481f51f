package services

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetIPAddressForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", GetIPAddress(r))
}

func TestGetIPAddressRealIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Real-IP", " 198.51.100.4 ")
	require.Equal(t, "198.51.100.4", GetIPAddress(r))
}

func TestGetIPAddressRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.9:54321"
	require.Equal(t, "192.0.2.9", GetIPAddress(r))
}

func TestGetIPAddressRemoteAddrWithoutPort(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.9"
	require.Equal(t, "192.0.2.9", GetIPAddress(r))
}
