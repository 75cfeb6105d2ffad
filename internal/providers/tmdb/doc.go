// Package tmdb implements metadata providers backed by The Movie Database
// v3 API: series search, episode listing, and movie identification.
package tmdb
