// Package echonest provides a client library for the Echo Nest API v4.
//
// # Overview
//
// This package implements a Go client for the artist methods of the
// Echo Nest API: lookup, search, similarity, top-ranked listings, and
// the per-artist document listings (audio, biographies, blogs, images,
// news, reviews, video, urls). It provides a clean, type-safe API with
// context support, structured errors, and lazy per-attribute caching.
//
// # Installation
//
//	go get github.com/mgrier/ennest/pkg/echonest
//
// # Quick Start
//
// First, create a client with your API key:
//
//	import "github.com/mgrier/ennest/pkg/echonest"
//
//	client, err := echonest.NewClient(echonest.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Artists
//
// An Artist can be created from an Echo Nest ID, a namespaced foreign
// ID, or a plain name, without touching the network:
//
//	a := client.Artists().Get("ARH6W4X1187B99274F")
//	a = client.Artists().Get("the national")
//	a = client.Artists().Get("musicbrainz:artist:a74b1b7f-71a5-4011-9441-d0b5e4122711")
//
// Attributes are fetched on first access and cached on the Artist for
// its lifetime:
//
//	hot, err := a.Hotttnesss(ctx, echonest.FetchOptions{})  // remote call
//	hot, err = a.Hotttnesss(ctx, echonest.FetchOptions{})   // cache hit
//	hot, err = a.Hotttnesss(ctx, echonest.FetchOptions{NoCache: true}) // refetch
//
// Document listings return freshly adapted Documents on every call;
// the underlying data is cached:
//
//	bios, err := a.Biographies(ctx, echonest.DocumentOptions{Results: 5})
//	for _, bio := range bios {
//	    text, _ := bio.GetString("text")
//	    fmt.Println(text)
//	}
//
// # Queries
//
// Search, similarity, and top-ranked queries return fully usable
// Artists, seeded with whatever fields the response carried:
//
//	artists, err := client.Artists().Search(ctx, echonest.SearchOptions{
//	    Name:    "the national",
//	    Results: 5,
//	})
//
//	similar, err := client.Artists().Similar(ctx, echonest.SimilarQuery{
//	    Name: "radiohead",
//	})
//
//	top, err := client.Artists().TopHottt(ctx, echonest.TopOptions{})
//
// # Error Handling
//
// Service-reported failures carry the Echo Nest status code:
//
//	_, err := a.Hotttnesss(ctx, echonest.FetchOptions{})
//	if err != nil {
//	    var enErr *echonest.Error
//	    if errors.As(err, &enErr) && enErr.Temporary() {
//	        // rate limited; the caller owns retry policy
//	    }
//	}
//
// The package performs no retries of its own: each accessor or query
// makes at most one remote call.
//
// # Context Support
//
// All remote operations accept a context.Context for cancellation and
// timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	artists, err := client.Artists().TopHottt(ctx, echonest.TopOptions{})
//
// # Configuration
//
// The client can be configured with a custom HTTP client, base URL
// (for testing), and an optional logger:
//
//	client, err := echonest.NewClient(echonest.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 30 * time.Second},
//	    Logger:     myLogger, // Implements echonest.Logger interface
//	})
package echonest
