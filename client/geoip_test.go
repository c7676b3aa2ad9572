package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoLookup(t *testing.T) {
	t.Run("should parse the geolocation response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"ip": "203.0.113.7",
				"city": "Lisbon",
				"region": "Lisbon",
				"country_name": "Portugal",
				"latitude": 38.7223,
				"longitude": -9.1393,
				"timezone": "Europe/Lisbon",
				"org": "Example ISP",
				"asn": "AS64500"
			}`))
		}))
		defer server.Close()

		result := NewGeoClient(server.URL).Lookup(context.Background())

		assert.Equal(t, "203.0.113.7", result.IP)
		assert.Equal(t, "Lisbon", result.City)
		assert.Equal(t, "Portugal", result.CountryName)
		assert.InDelta(t, 38.7223, result.Latitude, 0.0001)
		assert.Equal(t, "AS64500", result.ASN)
	})

	t.Run("should return the zero context on a server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		result := NewGeoClient(server.URL).Lookup(context.Background())

		assert.Equal(t, ClientContext{}, result)
	})

	t.Run("should return the zero context when unreachable", func(t *testing.T) {
		result := NewGeoClient("http://127.0.0.1:1").Lookup(context.Background())

		assert.Equal(t, ClientContext{}, result)
	})
}
