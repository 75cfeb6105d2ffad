package tmdb

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

	"reelmatch/internal/matcher"
	"reelmatch/internal/providers"
)

// ProviderName tags search results produced by this client.
const ProviderName = "TheMovieDB"

// DefaultBaseURL is the production TMDB API endpoint.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// searchResult is a single entry of a TMDB search payload. Movie and TV
// payloads use different field names for the same concepts.
type searchResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

type searchResponse struct {
	Page         int            `json:"page"`
	Results      []searchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type movieDetails struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type tvDetails struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	NumberOfSeasons int    `json:"number_of_seasons"`
}

type seasonDetails struct {
	SeasonNumber int `json:"season_number"`
	Episodes     []struct {
		Name          string `json:"name"`
		SeasonNumber  int    `json:"season_number"`
		EpisodeNumber int    `json:"episode_number"`
		AirDate       string `json:"air_date"`
	} `json:"episodes"`
}

// Client talks to the TMDB v3 API. It implements both the episode listing
// and the movie identification provider interfaces.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var (
	_ providers.EpisodeLister   = (*Client)(nil)
	_ providers.MovieIdentifier = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchSeries queries /search/tv and returns raw series candidates.
func (c *Client) SearchSeries(ctx context.Context, query string) ([]matcher.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty series query", matcher.ErrInvalidQuery)
	}
	params := url.Values{}
	params.Set("query", query)

	var payload searchResponse
	if err := c.get(ctx, "/search/tv", params, &payload); err != nil {
		return nil, err
	}
	out := make([]matcher.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, matcher.SearchResult{ID: r.ID, Name: r.Name, Provider: ProviderName})
	}
	return out, nil
}

// SearchMovies queries /search/movie, optionally narrowed to a release year.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]matcher.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty movie query", matcher.ErrInvalidQuery)
	}
	params := url.Values{}
	params.Set("query", query)
	if year > 0 {
		params.Set("primary_release_year", strconv.Itoa(year))
	}

	var payload searchResponse
	if err := c.get(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	out := make([]matcher.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		name := r.Title
		if y := releaseYear(r.ReleaseDate); y > 0 {
			name = fmt.Sprintf("%s (%d)", r.Title, y)
		}
		out = append(out, matcher.SearchResult{ID: r.ID, Name: name, Provider: ProviderName})
	}
	return out, nil
}

// ListEpisodes fetches every season of the series and flattens the episodes
// into candidates. TMDB exposes airdate numbering only, so any requested
// order falls back to it.
func (c *Client) ListEpisodes(ctx context.Context, series matcher.SearchResult, _ providers.SortOrder) ([]matcher.Candidate, error) {
	if series.ID <= 0 {
		return nil, fmt.Errorf("%w: series id must be positive", matcher.ErrInvalidQuery)
	}

	var details tvDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", series.ID), nil, &details); err != nil {
		return nil, err
	}
	seriesName := details.Name
	if seriesName == "" {
		seriesName = series.Name
	}

	var episodes []matcher.Candidate
	for season := 1; season <= details.NumberOfSeasons; season++ {
		var payload seasonDetails
		if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", series.ID, season), nil, &payload); err != nil {
			return nil, err
		}
		for _, ep := range payload.Episodes {
			candidate := matcher.Episode{
				SeriesID:   series.ID,
				SeriesName: seriesName,
				Season:     ep.SeasonNumber,
				Episode:    ep.EpisodeNumber,
				Title:      ep.Name,
			}
			if aired, err := time.Parse("2006-01-02", ep.AirDate); err == nil {
				candidate.AirDate = aired
			}
			episodes = append(episodes, matcher.EpisodeCandidate(candidate))
		}
	}
	if len(episodes) == 0 {
		return nil, fmt.Errorf("%w: series %d has no episodes", matcher.ErrNoMatch, series.ID)
	}
	return episodes, nil
}

// MovieDetails fetches the full record for a movie id.
func (c *Client) MovieDetails(ctx context.Context, id int64) (matcher.Movie, error) {
	if id <= 0 {
		return matcher.Movie{}, fmt.Errorf("%w: movie id must be positive", matcher.ErrInvalidQuery)
	}
	var payload movieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &payload); err != nil {
		return matcher.Movie{}, err
	}
	return matcher.Movie{
		ID:    payload.ID,
		Title: payload.Title,
		Year:  releaseYear(payload.ReleaseDate),
	}, nil
}

// get performs an authenticated GET against the given API path and decodes
// the JSON body into out. Network failures, rate limiting, and upstream 5xx
// map to ErrTransientLookup.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("%w: %s (latency=%v): %v", providers.ErrTransientLookup, path, latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: tmdb %s returned %d (latency=%v)", providers.ErrTransientLookup, path, resp.StatusCode, latency)
	default:
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
