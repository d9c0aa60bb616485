// Package geocode resolves map coordinates into street addresses.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "recipe-marketplace/1.0"
)

var ErrAddressNotFound = errors.New("address not found")

type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) (string, error)
}

type (
	nominatim struct {
		baseURL   string
		userAgent string
		client    *http.Client
	}

	nominatimAddress struct {
		Name     string `json:"name"`
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		State    string `json:"state"`
		Country  string `json:"country"`
		Postcode string `json:"postcode"`
	}

	nominatimResponse struct {
		Name        string           `json:"name"`
		DisplayName string           `json:"display_name"`
		Address     nominatimAddress `json:"address"`
		Error       string           `json:"error"`
	}
)

// NewNominatim returns a Geocoder backed by a Nominatim compatible reverse endpoint.
func NewNominatim(baseURL string) Geocoder {
	return &nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
	}
}

func (n *nominatim) Reverse(ctx context.Context, latitude, longitude float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("reverse geocode: decode: %w", err)
	}
	if body.Error != "" {
		return "", ErrAddressNotFound
	}

	address := formatAddress(body)
	if address == "" {
		return "", ErrAddressNotFound
	}
	return address, nil
}

// formatAddress joins name, street, city, region and country, skipping the
// parts that are missing. Falls back to the display name.
func formatAddress(r nominatimResponse) string {
	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	if city == "" {
		city = r.Address.Village
	}

	name := r.Name
	if name == "" {
		name = r.Address.Name
	}

	parts := make([]string, 0, 5)
	for _, p := range []string{name, r.Address.Road, city, r.Address.State, r.Address.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(r.DisplayName)
	}
	return strings.Join(parts, ", ")
}
