package echonest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Artist is a lazily populated view of one artist in the Echo Nest
// catalog.
//
// An Artist is created either directly from an identifier (see
// ArtistService.Get) or by adaptation from a search, similarity, or
// top-ranked response. Every attribute accessor fetches on first use
// and caches the raw response value for the lifetime of the Artist;
// pass NoCache to force a refetch. The cache is per instance and is
// never shared between Artists.
//
// An Artist is not safe for concurrent use. Callers needing concurrency
// must serialize access externally or use one Artist per goroutine.
type Artist struct {
	// ID is the Echo Nest artist ID, or a namespaced foreign
	// identifier such as "musicbrainz:artist:<uuid>". Empty when the
	// Artist was created from a plain name and no attribute has been
	// fetched yet.
	ID string

	// Name is the artist's display name. Present once any attribute
	// has been fetched or when supplied at construction.
	Name string

	client *Client
	cache  map[string]json.RawMessage
}

// FetchOptions controls a scalar attribute fetch.
type FetchOptions struct {
	// NoCache forces a remote fetch even when the attribute is
	// already cached, overwriting the cached value.
	NoCache bool
}

// DocumentOptions controls a document listing fetch.
type DocumentOptions struct {
	Results int    // Number of results to return (service default when zero)
	Start   int    // Starting offset into the result set
	License string // Desired license type, for listings that support it
	NoCache bool   // Force a remote fetch, overwriting the cached listing
}

// SimilarOptions controls an Artist.Similar fetch.
type SimilarOptions struct {
	Results int
	Start   int

	MaxFamiliarity float64
	MinFamiliarity float64
	MaxHotttnesss  float64
	MinHotttnesss  float64

	// Buckets are service-defined scoping filters, passed through
	// opaquely.
	Buckets []string
	// Limit restricts results to the id spaces named in Buckets.
	Limit bool

	NoCache bool
}

// newArtist creates an Artist bound to the client from an opaque
// identifier: an Echo Nest ID, a namespaced foreign ID, or a plain
// name.
func newArtist(client *Client, identifier string) *Artist {
	a := &Artist{
		client: client,
		cache:  make(map[string]json.RawMessage),
	}
	if looksLikeID(identifier) {
		a.ID = identifier
	} else {
		a.Name = identifier
	}
	return a
}

// newArtistFromRaw adapts one raw artist object from a query response
// into an Artist. The id and name are extracted; every other field
// present in the raw object seeds the new Artist's cache.
func newArtistFromRaw(client *Client, raw json.RawMessage) (*Artist, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse artist: %w", err)
	}

	a := &Artist{
		client: client,
		cache:  make(map[string]json.RawMessage),
	}
	for key, val := range fields {
		switch key {
		case "id":
			if err := json.Unmarshal(val, &a.ID); err != nil {
				return nil, fmt.Errorf("failed to parse artist id: %w", err)
			}
		case "name":
			if err := json.Unmarshal(val, &a.Name); err != nil {
				return nil, fmt.Errorf("failed to parse artist name: %w", err)
			}
		default:
			a.cache[key] = val
		}
	}
	return a, nil
}

// looksLikeID reports whether an identifier is an Echo Nest artist ID
// or a namespaced foreign ID rather than a plain name.
func looksLikeID(identifier string) bool {
	if strings.Contains(identifier, ":") {
		return true
	}
	return len(identifier) == 18 && strings.HasPrefix(identifier, "AR")
}

// String implements fmt.Stringer.
func (a *Artist) String() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// fetchAttribute performs one API call for this artist's identity
// and returns the raw response object.
func (a *Artist) fetchAttribute(ctx context.Context, attr string, params url.Values) (json.RawMessage, error) {
	p := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			p.Add(k, v)
		}
	}
	if a.ID != "" {
		p.Set("id", a.ID)
	} else {
		p.Set("name", a.Name)
	}
	return a.client.call(ctx, "artist/"+attr, p)
}

// artistBlock is the artist sub-object carried by scalar attribute and
// profile responses.
type artistBlock struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Hotttnesss  json.RawMessage `json:"hotttnesss"`
	Familiarity json.RawMessage `json:"familiarity"`
}

// absorbIdentity fills in the artist's id and name from a response
// block when they were not known yet.
func (a *Artist) absorbIdentity(block artistBlock) {
	if a.ID == "" && block.ID != "" {
		a.ID = block.ID
	}
	if a.Name == "" && block.Name != "" {
		a.Name = block.Name
	}
}

// score decodes a cached scalar attribute value.
func score(attr string, raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", attr, err)
	}
	return f, nil
}

// Hotttnesss returns the Echo Nest's numerical description of how
// hottt this artist currently is, in the range [0, 1].
func (a *Artist) Hotttnesss(ctx context.Context, opts FetchOptions) (float64, error) {
	if raw, ok := a.cache["hotttnesss"]; ok && !opts.NoCache {
		return score("hotttnesss", raw)
	}

	resp, err := a.fetchAttribute(ctx, "hotttnesss", nil)
	if err != nil {
		return 0, err
	}

	var body struct {
		Artist artistBlock `json:"artist"`
	}
	if err := json.Unmarshal(resp, &body); err != nil {
		return 0, fmt.Errorf("failed to parse hotttnesss response: %w", err)
	}

	// Cache only once the value decodes, so a malformed response does
	// not wedge the attribute behind a bad cache entry.
	val, err := score("hotttnesss", body.Artist.Hotttnesss)
	if err != nil {
		return 0, err
	}
	a.absorbIdentity(body.Artist)
	a.cache["hotttnesss"] = body.Artist.Hotttnesss
	return val, nil
}

// Familiarity returns the Echo Nest's numerical estimation of how
// familiar this artist currently is to the world, in the range [0, 1].
func (a *Artist) Familiarity(ctx context.Context, opts FetchOptions) (float64, error) {
	if raw, ok := a.cache["familiarity"]; ok && !opts.NoCache {
		return score("familiarity", raw)
	}

	resp, err := a.fetchAttribute(ctx, "familiarity", nil)
	if err != nil {
		return 0, err
	}

	var body struct {
		Artist artistBlock `json:"artist"`
	}
	if err := json.Unmarshal(resp, &body); err != nil {
		return 0, fmt.Errorf("failed to parse familiarity response: %w", err)
	}

	val, err := score("familiarity", body.Artist.Familiarity)
	if err != nil {
		return 0, err
	}
	a.absorbIdentity(body.Artist)
	a.cache["familiarity"] = body.Artist.Familiarity
	return val, nil
}

// documents implements the shared fetch-and-adapt path for the list
// valued attributes. The raw listing is cached under the attribute name
// once it adapts cleanly; Documents are freshly adapted on every call,
// cache hit or not. A response that fails to adapt is not cached, so
// the next read fetches again.
func (a *Artist) documents(ctx context.Context, attr, kind string, opts DocumentOptions) ([]Document, error) {
	raw, ok := a.cache[attr]
	fetched := false
	if !ok || opts.NoCache {
		params := url.Values{}
		addInt(params, "results", opts.Results)
		addInt(params, "start", opts.Start)
		addString(params, "license", opts.License)

		resp, err := a.fetchAttribute(ctx, attr, params)
		if err != nil {
			return nil, err
		}

		var body map[string]json.RawMessage
		if err := json.Unmarshal(resp, &body); err != nil {
			return nil, fmt.Errorf("failed to parse %s response: %w", attr, err)
		}
		raw = body[attr]
		fetched = true
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s listing: %w", attr, err)
	}

	docs := make([]Document, 0, len(items))
	for _, item := range items {
		doc, err := newDocument(kind, item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if fetched {
		a.cache[attr] = raw
	}
	return docs, nil
}

// Audio returns audio documents found on the web related to this
// artist.
func (a *Artist) Audio(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "audio", "audio", opts)
}

// Biographies returns biographies for this artist.
func (a *Artist) Biographies(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "biographies", "biography", opts)
}

// Blogs returns blog articles related to this artist.
func (a *Artist) Blogs(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "blogs", "blogs", opts)
}

// Images returns images of this artist.
func (a *Artist) Images(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "images", "image", opts)
}

// News returns news articles found on the web related to this artist.
func (a *Artist) News(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "news", "news", opts)
}

// Reviews returns reviews related to this artist's work.
func (a *Artist) Reviews(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "reviews", "review", opts)
}

// Video returns video documents found on the web related to this
// artist.
func (a *Artist) Video(ctx context.Context, opts DocumentOptions) ([]Document, error) {
	return a.documents(ctx, "video", "video", opts)
}

// URLs returns the urls document for this artist: its fields point at
// the artist's pages across the web.
func (a *Artist) URLs(ctx context.Context, opts FetchOptions) (Document, error) {
	raw, ok := a.cache["urls"]
	fetched := false
	if !ok || opts.NoCache {
		resp, err := a.fetchAttribute(ctx, "urls", nil)
		if err != nil {
			return Document{}, err
		}

		var body struct {
			URLs json.RawMessage `json:"urls"`
		}
		if err := json.Unmarshal(resp, &body); err != nil {
			return Document{}, fmt.Errorf("failed to parse urls response: %w", err)
		}
		raw = body.URLs
		fetched = true
	}

	doc, err := newDocument("urls", raw)
	if err != nil {
		return Document{}, err
	}
	if fetched {
		a.cache["urls"] = raw
	}
	return doc, nil
}

// Similar returns artists similar to this one. Each returned Artist is
// a fresh instance whose cache is seeded only with the fields present
// in the similarity response.
func (a *Artist) Similar(ctx context.Context, opts SimilarOptions) ([]*Artist, error) {
	raw, ok := a.cache["similar"]
	fetched := false
	if !ok || opts.NoCache {
		params := url.Values{}
		addInt(params, "results", opts.Results)
		addInt(params, "start", opts.Start)
		addFloat(params, "max_familiarity", opts.MaxFamiliarity)
		addFloat(params, "min_familiarity", opts.MinFamiliarity)
		addFloat(params, "max_hotttnesss", opts.MaxHotttnesss)
		addFloat(params, "min_hotttnesss", opts.MinHotttnesss)
		addList(params, "bucket", opts.Buckets)
		addFlag(params, "limit", opts.Limit)

		resp, err := a.fetchAttribute(ctx, "similar", params)
		if err != nil {
			return nil, err
		}

		var body struct {
			Artists json.RawMessage `json:"artists"`
		}
		if err := json.Unmarshal(resp, &body); err != nil {
			return nil, fmt.Errorf("failed to parse similar response: %w", err)
		}
		raw = body.Artists
		fetched = true
	}

	artists, err := adaptArtists(a.client, raw)
	if err != nil {
		return nil, err
	}
	if fetched {
		a.cache["similar"] = raw
	}
	return artists, nil
}

// ForeignID returns this artist's identifier in another id space, such
// as "musicbrainz" or "7digital".
//
// An empty string without an error means the artist has no foreign id
// in that id space; the absence is cached like any other attribute.
func (a *Artist) ForeignID(ctx context.Context, idspace string, opts FetchOptions) (string, error) {
	raw, ok := a.cache[idspace]
	fetched := false
	if !ok || opts.NoCache {
		params := url.Values{}
		params.Set("bucket", "id:"+idspace)

		resp, err := a.fetchAttribute(ctx, "profile", params)
		if err != nil {
			return "", err
		}

		var body struct {
			Artist map[string]json.RawMessage `json:"artist"`
		}
		if err := json.Unmarshal(resp, &body); err != nil {
			return "", fmt.Errorf("failed to parse profile response: %w", err)
		}

		raw, ok = body.Artist[idspace]
		if !ok {
			raw = json.RawMessage("null")
		}
		fetched = true
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("failed to parse %s foreign id: %w", idspace, err)
	}
	if fetched {
		a.cache[idspace] = raw
	}
	return id, nil
}

// adaptArtists adapts a raw artist listing into Artists.
func adaptArtists(client *Client, raw json.RawMessage) ([]*Artist, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse artist listing: %w", err)
	}

	artists := make([]*Artist, 0, len(items))
	for _, item := range items {
		artist, err := newArtistFromRaw(client, item)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, nil
}
