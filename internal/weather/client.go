// Package weather is the HTTP client for the upstream weather provider,
// exposing the two read calls the service consumes: current conditions and
// the 5-day/3-hour forecast.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/forecast"
)

// DefaultBaseURL is the upstream provider's API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// requestTimeout bounds every upstream call so a stalled provider surfaces
// as an upstream error instead of hanging the request.
const requestTimeout = 10 * time.Second

// Client calls the upstream weather provider. A missing API key is reported
// per request as a configuration error before any network call.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient constructs a provider client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Current is the normalized current-conditions reading for a city.
type Current struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// providerConditions mirrors the provider's weather[] entries.
type providerConditions struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// providerCurrent mirrors the provider-native current-conditions payload.
type providerCurrent struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []providerConditions `json:"weather"`
}

// providerForecast mirrors the provider-native 5-day/3-hour payload.
type providerForecast struct {
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp    float64  `json:"temp"`
			TempMin *float64 `json:"temp_min"`
			TempMax *float64 `json:"temp_max"`
		} `json:"main"`
		Weather []providerConditions `json:"weather"`
	} `json:"list"`
}

// get performs one provider call and decodes the 2xx body into out.
func (c *Client) get(ctx context.Context, endpoint, city, lang string, out any) error {
	if c.apiKey == "" {
		return apperr.New(apperr.Config, "weather API key is not configured")
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("lang", lang)
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode()), nil)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "building provider request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "weather provider unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.Newf(apperr.Upstream, "weather provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.Upstream, "decoding provider response", err)
	}
	return nil
}

// Current fetches current conditions for the city in the given language.
func (c *Client) Current(ctx context.Context, city, lang string) (*Current, error) {
	var raw providerCurrent
	if err := c.get(ctx, "weather", city, lang, &raw); err != nil {
		return nil, err
	}

	cur := &Current{
		City:        raw.Name,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
	}
	if len(raw.Weather) > 0 {
		cur.Description = raw.Weather[0].Description
		cur.Icon = raw.Weather[0].Icon
	}
	return cur, nil
}

// Forecast fetches the 5-day/3-hour forecast and normalizes each reading
// into an aggregator sample. A reading that carries only a single "current"
// temperature contributes it as both the min and max candidate.
func (c *Client) Forecast(ctx context.Context, city, lang string) ([]forecast.Sample, error) {
	var raw providerForecast
	if err := c.get(ctx, "forecast", city, lang, &raw); err != nil {
		return nil, err
	}

	samples := make([]forecast.Sample, 0, len(raw.List))
	for _, item := range raw.List {
		s := forecast.Sample{
			DateTime: item.DtTxt,
			Unix:     item.Dt,
			TempMin:  item.Main.Temp,
			TempMax:  item.Main.Temp,
		}
		if item.Main.TempMin != nil {
			s.TempMin = *item.Main.TempMin
		}
		if item.Main.TempMax != nil {
			s.TempMax = *item.Main.TempMax
		}
		if len(item.Weather) > 0 {
			s.Description = item.Weather[0].Description
			s.Icon = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}
