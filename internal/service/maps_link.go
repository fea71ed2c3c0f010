package service

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const numberPair = `(-?\d+\.\d+)(?:,|%2C)\s*(-?\d+\.\d+)`

var (
	atPattern    = regexp.MustCompile(`@` + numberPair)
	queryPattern = regexp.MustCompile(`[?&]q=` + numberPair)
	placePattern = regexp.MustCompile(`/` + numberPair)
)

// ParseCoordinates reads a latitude/longitude pair out of a Google Maps URL.
// It tries "@lat,lng", then "q=lat,lng", then a bare "/lat,lng" path segment.
func ParseCoordinates(link string) (float64, float64, bool) {
	for _, pattern := range []*regexp.Regexp{atPattern, queryPattern, placePattern} {
		match := pattern.FindStringSubmatch(link)
		if match == nil {
			continue
		}
		lat, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}
		return lat, lng, true
	}
	return 0, 0, false
}

// MapLinkResolver expands shortened Maps links by reading the redirect target
// without following it.
type MapLinkResolver struct {
	client     *http.Client
	shortHosts []string
}

func NewMapLinkResolver(timeout time.Duration) *MapLinkResolver {
	return &MapLinkResolver{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		shortHosts: []string{"maps.app.goo.gl", "goo.gl"},
	}
}

func (r *MapLinkResolver) isShortLink(link string) bool {
	for _, host := range r.shortHosts {
		if strings.Contains(link, host) {
			return true
		}
	}
	return false
}

func (r *MapLinkResolver) Resolve(ctx context.Context, shortLink string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortLink, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" {
		return "", fmt.Errorf("no redirect for %s (status %d)", shortLink, resp.StatusCode)
	}
	return location, nil
}

// Coordinates resolves link when it is shortened and parses the result.
func (r *MapLinkResolver) Coordinates(ctx context.Context, link string) (float64, float64, error) {
	full := link
	if r.isShortLink(link) {
		resolved, err := r.Resolve(ctx, link)
		if err != nil {
			return 0, 0, err
		}
		full = resolved
	}

	lat, lng, ok := ParseCoordinates(full)
	if !ok {
		return 0, 0, fmt.Errorf("no coordinates in %s", full)
	}
	return lat, lng, nil
}
