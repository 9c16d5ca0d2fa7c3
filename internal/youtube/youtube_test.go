package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New("test-key", "RO", "ro")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.baseURL = srv.URL
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New("  ", "", ""); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestSearch_Pagination(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/search" {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "fashion haul" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("regionCode"); got != "RO" {
			t.Errorf("regionCode = %q", got)
		}

		switch r.URL.Query().Get("pageToken") {
		case "":
			var items []string
			for i := 0; i < 50; i++ {
				items = append(items, fmt.Sprintf(`{"id":{"videoId":"vid%02d"}}`, i))
			}
			fmt.Fprintf(w, `{"nextPageToken":"page2","items":[%s]}`, strings.Join(items, ","))
		case "page2":
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"vid50"}},{"id":{"videoId":"vid51"}}]}`)
		default:
			t.Errorf("unexpected pageToken %q", r.URL.Query().Get("pageToken"))
		}
	}))

	ids, err := c.Search(context.Background(), "fashion haul", 52)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 52 {
		t.Fatalf("got %d ids, want 52", len(ids))
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
	if ids[0] != "vid00" || ids[51] != "vid51" {
		t.Errorf("ids = [%s ... %s]", ids[0], ids[51])
	}
}

func TestSearch_StopsAtMaxResults(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("maxResults"); got != "3" {
			t.Errorf("maxResults = %q, want 3", got)
		}
		fmt.Fprint(w, `{"nextPageToken":"more","items":[{"id":{"videoId":"a"}},{"id":{"videoId":"b"}},{"id":{"videoId":"c"}}]}`)
	}))

	ids, err := c.Search(context.Background(), "denim", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("got %d ids, want 3", len(ids))
	}
}

func TestSearch_SkipsNonVideoItems(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"id":{}},{"id":{"videoId":"real"}}]}`)
	}))

	ids, err := c.Search(context.Background(), "grunge", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 1 || ids[0] != "real" {
		t.Errorf("ids = %v, want [real]", ids)
	}
}

func TestSearch_Validation(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	if _, err := c.Search(context.Background(), "  ", 5); err == nil {
		t.Error("expected error for blank query")
	}
	ids, err := c.Search(context.Background(), "denim", 0)
	if err != nil || ids != nil {
		t.Errorf("maxResults=0: ids=%v err=%v, want nil/nil", ids, err)
	}
}

func TestSearch_HTTPError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))

	_, err := c.Search(context.Background(), "denim", 5)
	if err == nil || !strings.Contains(err.Error(), "status 403") {
		t.Errorf("error = %v, want status 403", err)
	}
}

func TestDetails(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Errorf("path = %s, want /videos", r.URL.Path)
		}
		if got := r.URL.Query().Get("part"); got != "snippet,statistics" {
			t.Errorf("part = %q", got)
		}
		if got := r.URL.Query().Get("id"); got != "a,b" {
			t.Errorf("id = %q, want a,b", got)
		}
		fmt.Fprint(w, `{"items":[
			{"id":"a","snippet":{"title":"Fall Haul","channelTitle":"chan","publishedAt":"2026-08-20T10:00:00Z","tags":["haul"]},"statistics":{"viewCount":"12345","likeCount":"678"}},
			{"id":"b","snippet":{"title":"No Stats"},"statistics":{}}
		]}`)
	}))

	videos, err := c.Details(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}

	a := videos[0]
	if a.VideoID != "a" || a.Title != "Fall Haul" || a.Channel != "chan" {
		t.Errorf("video a = %+v", a)
	}
	if a.URL != "https://www.youtube.com/watch?v=a" {
		t.Errorf("url = %q", a.URL)
	}
	if a.ViewCount != 12345 || a.LikeCount != 678 {
		t.Errorf("counts = %d/%d, want 12345/678", a.ViewCount, a.LikeCount)
	}

	// Missing statistics decode to zero, never an error.
	if videos[1].ViewCount != 0 || videos[1].LikeCount != 0 {
		t.Errorf("video b counts = %+v, want zeros", videos[1])
	}
}

func TestDetails_Batches(t *testing.T) {
	var batches []int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		batches = append(batches, len(ids))
		fmt.Fprint(w, `{"items":[]}`)
	}))

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
	}
	if _, err := c.Details(context.Background(), ids); err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(batches) != 3 || batches[0] != 50 || batches[1] != 50 || batches[2] != 20 {
		t.Errorf("batch sizes = %v, want [50 50 20]", batches)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12345", 12345},
		{"0", 0},
		{"", 0},
		{"not a number", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
