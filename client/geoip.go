package client

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGeoURL = "https://ipapi.co/json/"

const (
	geoTimeout    = 5 * time.Second
	geoRetryCount = 2
)

// GeoClient resolves the caller's network-origin metadata through a public
// IP geolocation endpoint. The lookup is strictly best effort: it carries a
// short timeout and a small retry budget, and any failure degrades to an
// empty context rather than blocking a login.
type GeoClient struct {
	http *resty.Client
}

func NewGeoClient(lookupURL string) *GeoClient {
	if lookupURL == "" {
		lookupURL = defaultGeoURL
	}
	return &GeoClient{
		http: resty.New().
			SetBaseURL(lookupURL).
			SetTimeout(geoTimeout).
			SetRetryCount(geoRetryCount),
	}
}

// Lookup never fails: on any error the zero-value context is returned.
func (g *GeoClient) Lookup(ctx context.Context) ClientContext {
	var result ClientContext

	resp, err := g.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("")
	if err != nil || !resp.IsSuccess() {
		return ClientContext{}
	}

	return result
}
