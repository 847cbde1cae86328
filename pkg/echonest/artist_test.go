package echonest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient creates a client pointed at a test server.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, server
}

const hotttnesssResponse = `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
	"artist": {"id": "ARH6W4X1187B99274F", "name": "Radiohead", "hotttnesss": 0.80098}}}`

const familiarityResponse = `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
	"artist": {"id": "ARH6W4X1187B99274F", "name": "Radiohead", "familiarity": 0.9068}}}`

func TestArtist_Hotttnesss(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++

		if !strings.HasSuffix(r.URL.Path, "/artist/hotttnesss") {
			t.Errorf("expected path artist/hotttnesss, got %s", r.URL.Path)
		}
		if id := r.URL.Query().Get("id"); id != "ARH6W4X1187B99274F" {
			t.Errorf("expected id ARH6W4X1187B99274F, got %s", id)
		}
		if key := r.URL.Query().Get("api_key"); key != "test-api-key" {
			t.Errorf("expected api_key test-api-key, got %s", key)
		}
		if format := r.URL.Query().Get("format"); format != "json" {
			t.Errorf("expected format json, got %s", format)
		}

		if _, err := w.Write([]byte(hotttnesssResponse)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	})

	ctx := context.Background()
	artist := client.Artists().Get("ARH6W4X1187B99274F")

	hot, err := artist.Hotttnesss(ctx, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hot != 0.80098 {
		t.Errorf("expected hotttnesss 0.80098, got %v", hot)
	}
	if artist.Name != "Radiohead" {
		t.Errorf("expected name Radiohead after fetch, got %q", artist.Name)
	}

	// Second call must be served from the cache.
	hot, err = artist.Hotttnesss(ctx, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error on cache hit: %v", err)
	}
	if hot != 0.80098 {
		t.Errorf("expected cached hotttnesss 0.80098, got %v", hot)
	}
	if calls != 1 {
		t.Errorf("expected 1 remote call, got %d", calls)
	}

	// NoCache always refetches and overwrites the cached value.
	if _, err := artist.Hotttnesss(ctx, FetchOptions{NoCache: true}); err != nil {
		t.Fatalf("unexpected error on refetch: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 remote calls after NoCache, got %d", calls)
	}
}

// TestArtist_FamiliarityDistinctKey verifies that familiarity is cached
// under its own key: fetching hotttnesss first does not satisfy a
// familiarity read even though both responses carry an artist block.
func TestArtist_FamiliarityDistinctKey(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var response string
		switch {
		case strings.HasSuffix(r.URL.Path, "/artist/hotttnesss"):
			response = hotttnesssResponse
		case strings.HasSuffix(r.URL.Path, "/artist/familiarity"):
			response = familiarityResponse
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	})

	ctx := context.Background()
	artist := client.Artists().Get("ARH6W4X1187B99274F")

	if _, err := artist.Hotttnesss(ctx, FetchOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fam, err := artist.Familiarity(ctx, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fam != 0.9068 {
		t.Errorf("expected familiarity 0.9068, got %v", fam)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 remote calls, got %d (%v)", len(paths), paths)
	}
}

func TestArtist_ErrorLeavesCacheUntouched(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var response string
		if calls == 1 {
			response = `{"response": {"status": {"version": "4.2", "code": 5, "message": "Invalid parameter"}}}`
		} else {
			response = hotttnesssResponse
		}
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	})

	ctx := context.Background()
	artist := client.Artists().Get("ARH6W4X1187B99274F")

	_, err := artist.Hotttnesss(ctx, FetchOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var enErr *Error
	if !errors.As(err, &enErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if enErr.Code != StatusInvalidParameter {
		t.Errorf("expected code %d, got %d", StatusInvalidParameter, enErr.Code)
	}

	// Nothing was cached by the failed call; the next read fetches.
	hot, err := artist.Hotttnesss(ctx, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hot != 0.80098 {
		t.Errorf("expected hotttnesss 0.80098, got %v", hot)
	}
	if calls != 2 {
		t.Errorf("expected 2 remote calls, got %d", calls)
	}
}

func TestArtist_Documents(t *testing.T) {
	tests := []struct {
		name     string
		attr     string
		kind     string
		fetch    func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error)
		response string
		field    string
		want     string
	}{
		{
			name: "audio",
			attr: "audio",
			kind: "audio",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.Audio(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"audio": [{"title": "Karma Police (live)", "url": "http://example.com/karma.mp3", "length": 262.0}]}}`,
			field: "title",
			want:  "Karma Police (live)",
		},
		{
			name: "biographies",
			attr: "biographies",
			kind: "biography",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.Biographies(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"biographies": [{"text": "Radiohead are an English rock band.", "site": "wikipedia"}]}}`,
			field: "text",
			want:  "Radiohead are an English rock band.",
		},
		{
			name: "blogs",
			attr: "blogs",
			kind: "blogs",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.Blogs(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"blogs": [{"name": "some blog", "url": "http://blog.example.com"}]}}`,
			field: "name",
			want:  "some blog",
		},
		{
			name: "images",
			attr: "images",
			kind: "image",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.Images(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"images": [{"url": "http://img.example.com/radiohead.jpg"}]}}`,
			field: "url",
			want:  "http://img.example.com/radiohead.jpg",
		},
		{
			name: "news",
			attr: "news",
			kind: "news",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.News(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"news": [{"name": "Radiohead announce tour", "url": "http://news.example.com"}]}}`,
			field: "name",
			want:  "Radiohead announce tour",
		},
		{
			name: "reviews",
			attr: "reviews",
			kind: "review",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.Reviews(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"reviews": [{"release": "In Rainbows", "summary": "a fine record"}]}}`,
			field: "release",
			want:  "In Rainbows",
		},
		{
			name: "video",
			attr: "video",
			kind: "video",
			fetch: func(ctx context.Context, a *Artist, opts DocumentOptions) ([]Document, error) {
				return a.Video(ctx, opts)
			},
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"video": [{"title": "No Surprises", "url": "http://video.example.com"}]}}`,
			field: "title",
			want:  "No Surprises",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++

				if !strings.HasSuffix(r.URL.Path, "/artist/"+tt.attr) {
					t.Errorf("expected path artist/%s, got %s", tt.attr, r.URL.Path)
				}
				if results := r.URL.Query().Get("results"); results != "5" {
					t.Errorf("expected results 5, got %s", results)
				}
				if start := r.URL.Query().Get("start"); start != "" {
					t.Errorf("expected start to be absent, got %s", start)
				}

				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			})

			ctx := context.Background()
			artist := client.Artists().Get("ARH6W4X1187B99274F")

			docs, err := tt.fetch(ctx, artist, DocumentOptions{Results: 5})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(docs) != 1 {
				t.Fatalf("expected 1 document, got %d", len(docs))
			}
			if docs[0].Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, docs[0].Kind)
			}
			got, err := docs[0].GetString(tt.field)
			if err != nil {
				t.Fatalf("unexpected error reading %s: %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("expected %s %q, got %q", tt.field, tt.want, got)
			}

			// A second call adapts from the cache without a remote call.
			docs, err = tt.fetch(ctx, artist, DocumentOptions{Results: 5})
			if err != nil {
				t.Fatalf("unexpected error on cache hit: %v", err)
			}
			if len(docs) != 1 {
				t.Fatalf("expected 1 cached document, got %d", len(docs))
			}
			if calls != 1 {
				t.Errorf("expected 1 remote call, got %d", calls)
			}
		})
	}
}

func TestArtist_URLs(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		response := `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
			"urls": {"wikipedia_url": "http://en.wikipedia.org/wiki/Radiohead",
				"official_url": "http://radiohead.com"}}}`
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	})

	ctx := context.Background()
	artist := client.Artists().Get("ARH6W4X1187B99274F")

	urls, err := artist.URLs(ctx, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if urls.Kind != "urls" {
		t.Errorf("expected kind urls, got %s", urls.Kind)
	}
	official, err := urls.GetString("official_url")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if official != "http://radiohead.com" {
		t.Errorf("expected official_url http://radiohead.com, got %s", official)
	}

	// Missing field access is a local error, not a service failure.
	if _, err := urls.Get("twitter_url"); !errors.Is(err, ErrNoSuchField) {
		t.Errorf("expected ErrNoSuchField, got %v", err)
	}

	if _, err := artist.URLs(ctx, FetchOptions{}); err != nil {
		t.Fatalf("unexpected error on cache hit: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 remote call, got %d", calls)
	}
}

func TestArtist_Similar(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++

		q := r.URL.Query()
		if got := q["bucket"]; len(got) != 2 || got[0] != "hotttnesss" || got[1] != "familiarity" {
			t.Errorf("expected buckets [hotttnesss familiarity], got %v", got)
		}
		if limit := q.Get("limit"); limit != "true" {
			t.Errorf("expected limit true, got %q", limit)
		}
		if minFam := q.Get("min_familiarity"); minFam != "0.4" {
			t.Errorf("expected min_familiarity 0.4, got %q", minFam)
		}
		if maxFam := q.Get("max_familiarity"); maxFam != "" {
			t.Errorf("expected max_familiarity to be absent, got %q", maxFam)
		}

		response := `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
			"artists": [
				{"id": "AR6SPRZ1187FB4958B", "name": "Muse", "hotttnesss": 0.75},
				{"id": "ARR8D5Y1187B98BC3C", "name": "Portishead"}
			]}}`
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	})

	ctx := context.Background()
	artist := client.Artists().Get("ARH6W4X1187B99274F")

	similar, err := artist.Similar(ctx, SimilarOptions{
		MinFamiliarity: 0.4,
		Buckets:        []string{"hotttnesss", "familiarity"},
		Limit:          true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(similar) != 2 {
		t.Fatalf("expected 2 similar artists, got %d", len(similar))
	}
	if similar[0].Name != "Muse" || similar[0].ID != "AR6SPRZ1187FB4958B" {
		t.Errorf("unexpected first artist: %s (%s)", similar[0].Name, similar[0].ID)
	}

	// The bucketed field rode along in the response, so reading it off
	// the adapted artist must not hit the network.
	hot, err := similar[0].Hotttnesss(ctx, FetchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hot != 0.75 {
		t.Errorf("expected seeded hotttnesss 0.75, got %v", hot)
	}
	if calls != 1 {
		t.Errorf("expected 1 remote call, got %d", calls)
	}

	// Adaptation happens per call: the artists are fresh instances and
	// do not share caches.
	again, err := artist.Similar(ctx, SimilarOptions{})
	if err != nil {
		t.Fatalf("unexpected error on cache hit: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cache hit without a remote call, got %d calls", calls)
	}
	if again[0] == similar[0] {
		t.Error("expected a fresh Artist per adaptation")
	}
}

func TestArtist_ForeignID(t *testing.T) {
	tests := []struct {
		name     string
		idspace  string
		response string
		want     string
	}{
		{
			name:    "present",
			idspace: "musicbrainz",
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"artist": {"id": "ARH6W4X1187B99274F", "name": "Radiohead",
					"musicbrainz": "musicbrainz:artist:a74b1b7f-71a5-4011-9441-d0b5e4122711"}}}`,
			want: "musicbrainz:artist:a74b1b7f-71a5-4011-9441-d0b5e4122711",
		},
		{
			name:    "absent namespace is not an error",
			idspace: "7digital",
			response: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"artist": {"id": "ARH6W4X1187B99274F", "name": "Radiohead"}}}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++

				if !strings.HasSuffix(r.URL.Path, "/artist/profile") {
					t.Errorf("expected path artist/profile, got %s", r.URL.Path)
				}
				if bucket := r.URL.Query().Get("bucket"); bucket != "id:"+tt.idspace {
					t.Errorf("expected bucket id:%s, got %s", tt.idspace, bucket)
				}

				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			})

			ctx := context.Background()
			artist := client.Artists().Get("ARH6W4X1187B99274F")

			id, err := artist.ForeignID(ctx, tt.idspace, FetchOptions{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("expected foreign id %q, got %q", tt.want, id)
			}

			// Presence and absence are both cached under the idspace key.
			if _, err := artist.ForeignID(ctx, tt.idspace, FetchOptions{}); err != nil {
				t.Fatalf("unexpected error on cache hit: %v", err)
			}
			if calls != 1 {
				t.Errorf("expected 1 remote call, got %d", calls)
			}
		})
	}
}

// TestArtist_MalformedSuccessNotCached verifies that a success-status
// response missing the attribute key is not committed to the cache: the
// read fails, and the next cache-enabled read fetches again instead of
// replaying the failure.
func TestArtist_MalformedSuccessNotCached(t *testing.T) {
	const emptySuccess = `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"}}}`

	tests := []struct {
		name string
		good string
		read func(ctx context.Context, a *Artist) error
	}{
		{
			name: "audio",
			good: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"audio": [{"title": "Karma Police (live)"}]}}`,
			read: func(ctx context.Context, a *Artist) error {
				_, err := a.Audio(ctx, DocumentOptions{})
				return err
			},
		},
		{
			name: "urls",
			good: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"urls": {"official_url": "http://radiohead.com"}}}`,
			read: func(ctx context.Context, a *Artist) error {
				_, err := a.URLs(ctx, FetchOptions{})
				return err
			},
		},
		{
			name: "similar",
			good: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"artists": [{"id": "AR6SPRZ1187FB4958B", "name": "Muse"}]}}`,
			read: func(ctx context.Context, a *Artist) error {
				_, err := a.Similar(ctx, SimilarOptions{})
				return err
			},
		},
		{
			name: "hotttnesss",
			good: hotttnesssResponse,
			read: func(ctx context.Context, a *Artist) error {
				_, err := a.Hotttnesss(ctx, FetchOptions{})
				return err
			},
		},
		{
			name: "foreign id",
			good: `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
				"artist": {"id": "ARH6W4X1187B99274F", "name": "Radiohead",
					"musicbrainz": "musicbrainz:artist:a74b1b7f-71a5-4011-9441-d0b5e4122711"}}}`,
			read: func(ctx context.Context, a *Artist) error {
				// A non-string value in the idspace must not be cached.
				_, err := a.ForeignID(ctx, "musicbrainz", FetchOptions{})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++

				response := emptySuccess
				if tt.name == "foreign id" && calls == 1 {
					// Present but malformed value instead of a missing key.
					response = `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
						"artist": {"id": "ARH6W4X1187B99274F", "name": "Radiohead", "musicbrainz": 42}}}`
				}
				if calls > 1 {
					response = tt.good
				}
				if _, err := w.Write([]byte(response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			})

			ctx := context.Background()
			artist := client.Artists().Get("ARH6W4X1187B99274F")

			if err := tt.read(ctx, artist); err == nil {
				t.Fatal("expected error for malformed response, got nil")
			}

			// The failed read left the cache alone, so this read fetches
			// the now-valid response.
			if err := tt.read(ctx, artist); err != nil {
				t.Fatalf("expected refetch to succeed, got %v", err)
			}
			if calls != 2 {
				t.Errorf("expected 2 remote calls, got %d", calls)
			}
		})
	}
}

func TestArtist_NameIdentity(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if name := r.URL.Query().Get("name"); name != "the national" {
			t.Errorf("expected name parameter, got %q", name)
		}
		if id := r.URL.Query().Get("id"); id != "" {
			t.Errorf("expected no id parameter, got %q", id)
		}
		response := `{"response": {"status": {"version": "4.2", "code": 0, "message": "Success"},
			"artist": {"id": "ARJ7KF01187B98D717", "name": "The National", "hotttnesss": 0.6}}}`
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	})

	ctx := context.Background()
	artist := client.Artists().Get("the national")
	if artist.ID != "" || artist.Name != "the national" {
		t.Fatalf("expected a name-only artist, got id=%q name=%q", artist.ID, artist.Name)
	}

	if _, err := artist.Hotttnesss(ctx, FetchOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artist.ID != "ARJ7KF01187B98D717" {
		t.Errorf("expected id absorbed from response, got %q", artist.ID)
	}
}
