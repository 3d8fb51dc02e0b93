package opensky

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/skymap-live/skymap/pkg/flight"
)

// DefaultBaseURL is the public OpenSky Network REST API.
const DefaultBaseURL = "https://opensky-network.org/api"

// State vector array indexes, per the OpenSky REST API documentation.
// Each state is a fixed-arity positional array of 17 elements.
const (
	idxICAO24        = 0
	idxCallsign      = 1
	idxOriginCountry = 2
	idxTimePosition  = 3
	idxLastContact   = 4
	idxLongitude     = 5
	idxLatitude      = 6
	idxBaroAltitude  = 7
	idxOnGround      = 8
	idxVelocity      = 9
	idxTrueTrack     = 10
	idxVerticalRate  = 11
	idxSensors       = 12
	idxGeoAltitude   = 13
	idxSquawk        = 14
	idxSPI           = 15
	idxPositionSrc   = 16

	// minStateLen is the shortest array still mapped into a record.
	// Anything past idxTrueTrack is optional tail data.
	minStateLen = idxTrueTrack + 1
)

// Client fetches live state vectors from an OpenSky-style endpoint.
// Anonymous access only: no request parameters, no authentication.
type Client struct {
	// baseURL is the API base URL (default: DefaultBaseURL)
	baseURL string

	// httpClient is the HTTP client used for API requests
	httpClient *http.Client

	// limiter paces requests; the anonymous API allows roughly one
	// request every ten seconds before throttling kicks in
	limiter *rate.Limiter
}

// NewClient creates a client for the given base URL.
// Pass DefaultBaseURL outside of tests.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
}

// statesResponse is the JSON envelope returned by /states/all.
type statesResponse struct {
	// Time is the Unix timestamp of the snapshot
	Time int64 `json:"time"`

	// States is the array of positional state vectors; null when the
	// network has nothing to report
	States []stateVector `json:"states"`
}

// stateVector is one 17-element positional array. Elements are
// heterogeneous (strings, numbers, booleans, nulls), so it decodes as
// a slice of untyped values.
type stateVector []interface{}

// States fetches all current state vectors and maps them into flight
// records. Records without a position are retained with HasPosition
// unset; a blank identity is retained as-is.
func (c *Client) States(ctx context.Context) ([]flight.Flight, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := c.baseURL + "/states/all"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch state vectors: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
			Message:    "rate limit exceeded",
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	// A missing or null states field is a schema failure, not an empty sky.
	if apiResp.States == nil {
		return nil, fmt.Errorf("response missing states array")
	}

	flights := make([]flight.Flight, 0, len(apiResp.States))
	for _, sv := range apiResp.States {
		if len(sv) < minStateLen {
			continue
		}
		flights = append(flights, convertState(sv))
	}

	return flights, nil
}

// Close cleanly shuts down the client. No persistent connections are
// held, so this is a no-op.
func (c *Client) Close() error {
	return nil
}

// convertState maps one positional state vector into a Flight.
// Null elements decode as nil and leave the corresponding field zero.
func convertState(sv stateVector) flight.Flight {
	f := flight.Flight{
		ICAO:          asString(sv, idxICAO24),
		Callsign:      strings.TrimSpace(asString(sv, idxCallsign)),
		OriginCountry: asString(sv, idxOriginCountry),
		OnGround:      asBool(sv, idxOnGround),
		GroundSpeed:   asFloat(sv, idxVelocity),
		VerticalRate:  asFloat(sv, idxVerticalRate),
		Squawk:        asString(sv, idxSquawk),
	}

	// Position: both coordinates must be present for map placement.
	lon, lonOK := asFloatOK(sv, idxLongitude)
	lat, latOK := asFloatOK(sv, idxLatitude)
	if lonOK && latOK {
		f.Longitude = lon
		f.Latitude = lat
		f.HasPosition = true
	}

	// Altitude: prefer barometric, fall back to geometric.
	if alt, ok := asFloatOK(sv, idxBaroAltitude); ok {
		f.Altitude = alt
	} else if alt, ok := asFloatOK(sv, idxGeoAltitude); ok {
		f.Altitude = alt
	}

	if track, ok := asFloatOK(sv, idxTrueTrack); ok {
		f.Track = track
	}

	if contact, ok := asFloatOK(sv, idxLastContact); ok {
		f.LastSeen = time.Unix(int64(contact), 0).UTC()
	}

	return f
}

// asString extracts a string element, returning "" for nulls, missing
// tail elements, or non-string values.
func asString(sv stateVector, idx int) string {
	if idx >= len(sv) {
		return ""
	}
	s, _ := sv[idx].(string)
	return s
}

// asFloat extracts a numeric element, returning 0 when absent.
func asFloat(sv stateVector, idx int) float64 {
	v, _ := asFloatOK(sv, idx)
	return v
}

// asFloatOK extracts a numeric element, reporting whether it was
// actually present. JSON numbers always decode as float64.
func asFloatOK(sv stateVector, idx int) (float64, bool) {
	if idx >= len(sv) {
		return 0, false
	}
	f, ok := sv[idx].(float64)
	return f, ok
}

// asBool extracts a boolean element, returning false when absent.
func asBool(sv stateVector, idx int) bool {
	if idx >= len(sv) {
		return false
	}
	b, _ := sv[idx].(bool)
	return b
}

// RateLimitError represents an HTTP 429 response with retry information.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// IsRateLimitError checks if an error is a rate limit error.
func IsRateLimitError(err error) (*RateLimitError, bool) {
	if rle, ok := err.(*RateLimitError); ok {
		return rle, true
	}
	return nil, false
}

// parseRetryAfter extracts the Retry-After header value.
// Supports both delay-seconds and HTTP-date formats; returns 0 when the
// header is absent or unusable.
func parseRetryAfter(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if retryTime, err := http.ParseTime(retryAfter); err == nil {
		if d := time.Until(retryTime); d > 0 {
			return d
		}
	}

	return 0
}
