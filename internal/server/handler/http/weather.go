package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/forecast"
	"github.com/avolkov/skycast/internal/middleware"
	"github.com/avolkov/skycast/internal/weather"
)

// forecastDays bounds how many daily summaries a forecast response carries.
const forecastDays = 6

// WeatherProvider defines the upstream provider calls required by the HTTP
// handlers.
type WeatherProvider interface {
	// Current fetches current conditions for a city.
	Current(ctx context.Context, city, lang string) (*weather.Current, error)
	// Forecast fetches normalized 3-hour samples for a city.
	Forecast(ctx context.Context, city, lang string) ([]forecast.Sample, error)
}

// SearchRecorder appends a search to the user's history.
type SearchRecorder interface {
	Record(ctx context.Context, userID int64, city, lang string) error
}

// WeatherHandler handles the public weather and forecast endpoints.
type WeatherHandler struct {
	Provider WeatherProvider
	// History receives a best-effort record of authenticated searches.
	History SearchRecorder
	Log     *zap.Logger
}

// cityLang extracts and defaults the query parameters shared by both
// endpoints. A missing city is a validation error.
func cityLang(r *http.Request) (string, string, error) {
	city := r.URL.Query().Get("city")
	if city == "" {
		return "", "", apperr.New(apperr.Validation, "missing city parameter")
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}
	return city, lang, nil
}

// recordSearch appends the search to history when the caller presented a
// valid bearer token. Failures are non-fatal: they are logged and never
// affect the response.
func (h *WeatherHandler) recordSearch(ctx context.Context, city, lang string) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok || h.History == nil {
		return
	}
	if err := h.History.Record(ctx, userID, city, lang); err != nil {
		h.Log.Warn("recording search history failed",
			zap.Int64("user_id", userID),
			zap.String("city", city),
			zap.Error(err),
		)
	}
}

// Current handles GET /api/weather, proxying upstream current conditions.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	city, lang, err := cityLang(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	cur, err := h.Provider.Current(r.Context(), city, lang)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	h.recordSearch(r.Context(), city, lang)
	writeJSON(w, http.StatusOK, cur)
}

// forecastResponse is the JSON shape of GET /api/forecast.
type forecastResponse struct {
	City     string         `json:"city"`
	Forecast []forecast.Day `json:"forecast"`
}

// Forecast handles GET /api/forecast, aggregating upstream 3-hour samples
// into at most six daily summaries.
func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	city, lang, err := cityLang(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	samples, err := h.Provider.Forecast(r.Context(), city, lang)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	h.recordSearch(r.Context(), city, lang)
	writeJSON(w, http.StatusOK, forecastResponse{
		City:     city,
		Forecast: forecast.Aggregate(samples, forecastDays),
	})
}
