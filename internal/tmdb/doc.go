// Package tmdb talks to the movie database's v3 REST API.
//
// It builds request URLs for the two catalog endpoints (popular and top
// rated) and the per-movie detail endpoint, performs blocking GET requests
// through a Transport, and turns response bodies into catalog items or
// opaque detail payloads. Every failure is reported as a *FetchError whose
// Kind tells transport problems apart from malformed responses.
package tmdb
