package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// CountryInfo is the display-only enrichment attached to a blog.
type CountryInfo struct {
	Flag     string `json:"flag"`
	Capital  string `json:"capital"`
	Currency string `json:"currency"`
}

// CountryService looks up country metadata from a restcountries-style
// API. The upstream is treated as unreliable: callers must tolerate an
// error and render without enrichment.
type CountryService struct {
	client  *http.Client
	baseURL string
}

func NewCountryService() *CountryService {
	baseURL := os.Getenv("COUNTRY_API_URL")
	if baseURL == "" {
		baseURL = "https://restcountries.com/v3.1"
	}
	return &CountryService{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}
}

// restcountries v3.1 name-lookup response shape (the fields we use).
type countryResponse struct {
	Flag    string   `json:"flag"`
	Capital []string `json:"capital"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

// Lookup fetches flag, capital and primary currency for a country name.
func (s *CountryService) Lookup(ctx context.Context, name string) (*CountryInfo, error) {
	endpoint := fmt.Sprintf("%s/name/%s?fields=flag,capital,currencies", s.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country lookup: status %d", resp.StatusCode)
	}

	var matches []countryResponse
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("country lookup: no match for %q", name)
	}

	match := matches[0]
	info := &CountryInfo{Flag: match.Flag}
	if len(match.Capital) > 0 {
		info.Capital = match.Capital[0]
	}
	for _, cur := range match.Currencies {
		info.Currency = cur.Name
		if cur.Symbol != "" {
			info.Currency = fmt.Sprintf("%s (%s)", cur.Name, cur.Symbol)
		}
		break
	}
	return info, nil
}
