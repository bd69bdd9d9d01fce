package location

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	commonhttp "github.com/Ayupanchal18/Renters-sub007/internal/common/http"
)

const defaultProviderTimeout = 5 * time.Second

// NominatimProvider reverse-geocodes against an OpenStreetMap Nominatim
// endpoint. No API key is required; the public instance rate-limits by IP.
type NominatimProvider struct {
	baseURL string
	client  *commonhttp.Client
}

func NewNominatimProvider(baseURL string, timeout time.Duration) *NominatimProvider {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &NominatimProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  commonhttp.NewClient(timeout),
	}
}

func (p *NominatimProvider) Name() string { return "nominatim" }

func (p *NominatimProvider) ReverseGeocode(ctx context.Context, coords Coordinates) (*Location, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", coords.Lat))
	q.Set("lon", fmt.Sprintf("%f", coords.Lng))

	var resp struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/reverse?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("nominatim reverse geocode: %w", err)
	}

	city := resp.Address.City
	if city == "" {
		city = resp.Address.Town
	}
	if city == "" {
		city = resp.Address.Village
	}

	loc := Standardize(ProviderFields{
		City:    city,
		State:   resp.Address.State,
		Country: resp.Address.Country,
	}, coords)
	if loc == nil {
		return nil, fmt.Errorf("nominatim returned no usable city for %.3f,%.3f", coords.Lat, coords.Lng)
	}
	return loc, nil
}

// BigDataCloudProvider reverse-geocodes against the BigDataCloud client API,
// which is keyless and tolerant of coarse coordinates.
type BigDataCloudProvider struct {
	baseURL string
	client  *commonhttp.Client
}

func NewBigDataCloudProvider(baseURL string, timeout time.Duration) *BigDataCloudProvider {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &BigDataCloudProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  commonhttp.NewClient(timeout),
	}
}

func (p *BigDataCloudProvider) Name() string { return "bigdatacloud" }

func (p *BigDataCloudProvider) ReverseGeocode(ctx context.Context, coords Coordinates) (*Location, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	q.Set("longitude", fmt.Sprintf("%f", coords.Lng))
	q.Set("localityLanguage", "en")

	var resp struct {
		City                 string `json:"city"`
		Locality             string `json:"locality"`
		PrincipalSubdivision string `json:"principalSubdivision"`
		CountryName          string `json:"countryName"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/data/reverse-geocode-client?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("bigdatacloud reverse geocode: %w", err)
	}

	city := resp.City
	if city == "" {
		city = resp.Locality
	}

	loc := Standardize(ProviderFields{
		City:    city,
		State:   resp.PrincipalSubdivision,
		Country: resp.CountryName,
	}, coords)
	if loc == nil {
		return nil, fmt.Errorf("bigdatacloud returned no usable city for %.3f,%.3f", coords.Lat, coords.Lng)
	}
	return loc, nil
}
