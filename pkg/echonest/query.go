package echonest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ArtistService provides artist lookup and query operations for the
// Echo Nest API.
type ArtistService struct {
	client *Client
}

// SearchOptions holds the arguments for ArtistService.Search. Zero
// valued fields are omitted from the request.
type SearchOptions struct {
	Name        string // Artist name to search for
	Description string // A string describing the artist
	Results     int    // Number of results to return (service default when zero)

	// Buckets are service-defined scoping filters, passed through
	// opaquely.
	Buckets []string
	// Limit restricts results to the id spaces named in Buckets.
	Limit bool
	// Exact requires exact name matches.
	Exact bool
	// SoundsLike searches for similar sounding matches (only works
	// with Name).
	SoundsLike bool
	// Sort names a service-defined sort order.
	Sort string

	MaxFamiliarity float64
	MinFamiliarity float64
	MaxHotttnesss  float64
	MinHotttnesss  float64
}

// TopOptions holds the arguments for ArtistService.TopHottt.
type TopOptions struct {
	Start   int
	Results int
	Buckets []string
	Limit   bool
}

// SimilarQuery holds the arguments for ArtistService.Similar.
//
// ID and Name are conveniences for a single seed; they are folded into
// IDs and Names before the request is built.
type SimilarQuery struct {
	ID    string
	IDs   []string
	Name  string
	Names []string

	Start   int
	Results int
	Buckets []string
	Limit   bool

	MaxFamiliarity float64
	MinFamiliarity float64
	MaxHotttnesss  float64
	MinHotttnesss  float64
}

// Get returns an Artist for the given identifier without making a
// remote call. The identifier may be an Echo Nest artist ID, a
// namespaced foreign ID such as "musicbrainz:artist:<uuid>", or a
// plain artist name; attributes are fetched lazily on first access.
func (s *ArtistService) Get(identifier string) *Artist {
	return newArtist(s.client, identifier)
}

// Search searches for artists by name, description, or constraint.
//
// Example:
//
//	artists, err := client.Artists().Search(ctx, echonest.SearchOptions{
//	    Name:    "the national",
//	    Results: 5,
//	})
func (s *ArtistService) Search(ctx context.Context, opts SearchOptions) ([]*Artist, error) {
	params := url.Values{}
	addString(params, "name", opts.Name)
	addString(params, "description", opts.Description)
	addInt(params, "results", opts.Results)
	addList(params, "bucket", opts.Buckets)
	addFlag(params, "limit", opts.Limit)
	addFlag(params, "exact", opts.Exact)
	addFlag(params, "sounds_like", opts.SoundsLike)
	addString(params, "sort", opts.Sort)
	addFloat(params, "max_familiarity", opts.MaxFamiliarity)
	addFloat(params, "min_familiarity", opts.MinFamiliarity)
	addFloat(params, "max_hotttnesss", opts.MaxHotttnesss)
	addFloat(params, "min_hotttnesss", opts.MinHotttnesss)

	return s.query(ctx, "artist/search", params)
}

// TopHottt returns the current top hotttest artists.
func (s *ArtistService) TopHottt(ctx context.Context, opts TopOptions) ([]*Artist, error) {
	params := url.Values{}
	addInt(params, "start", opts.Start)
	addInt(params, "results", opts.Results)
	addList(params, "bucket", opts.Buckets)
	addFlag(params, "limit", opts.Limit)

	return s.query(ctx, "artist/top_hottt", params)
}

// Similar returns artists similar to the given seed artists, by id
// and/or by name.
func (s *ArtistService) Similar(ctx context.Context, opts SimilarQuery) ([]*Artist, error) {
	ids := opts.IDs
	if opts.ID != "" {
		ids = append([]string{opts.ID}, ids...)
	}
	names := opts.Names
	if opts.Name != "" {
		names = append([]string{opts.Name}, names...)
	}

	params := url.Values{}
	addList(params, "id", ids)
	addList(params, "name", names)
	addFloat(params, "max_familiarity", opts.MaxFamiliarity)
	addFloat(params, "min_familiarity", opts.MinFamiliarity)
	addFloat(params, "max_hotttnesss", opts.MaxHotttnesss)
	addFloat(params, "min_hotttnesss", opts.MinHotttnesss)
	addInt(params, "start", opts.Start)
	addInt(params, "results", opts.Results)
	addList(params, "bucket", opts.Buckets)
	addFlag(params, "limit", opts.Limit)

	return s.query(ctx, "artist/similar", params)
}

// query performs one API call and adapts the returned artist
// listing.
func (s *ArtistService) query(ctx context.Context, path string, params url.Values) ([]*Artist, error) {
	resp, err := s.client.call(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var body struct {
		Artists json.RawMessage `json:"artists"`
	}
	if err := json.Unmarshal(resp, &body); err != nil {
		return nil, fmt.Errorf("failed to parse artist listing: %w", err)
	}

	return adaptArtists(s.client, body.Artists)
}
