package wordpress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mapmyfirm/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/wp-json/wp/v2/types", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"post": {"name": "Posts", "slug": "post", "rest_base": "posts", "hierarchical": false},
			"page": {"name": "Pages", "slug": "page", "rest_base": "pages", "hierarchical": true},
			"attachment": {"name": "Media", "slug": "attachment", "rest_base": "media"},
			"wp_block": {"name": "Blocks", "slug": "wp_block", "rest_base": ""}
		}`)
	})

	mux.HandleFunc("/wp-json/wp/v2/pages", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("per_page") != "2" || q.Get("_fields") != pageFields || q.Get("orderby") != "id" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		w.Header().Set("X-WP-Total", "3")
		w.Header().Set("X-WP-TotalPages", "2")
		switch q.Get("page") {
		case "1":
			fmt.Fprint(w, `[
				{"id": 1, "title": {"rendered": "Tom &amp; Jerry&#8217;s <em>Firm</em>"}, "slug": "home", "link": "https://x.test/", "parent": 0, "type": "page", "status": "publish", "modified": "2024-01-02T03:04:05", "excerpt": {"rendered": "<p>Hello  <b>world</b></p>\n"}},
				{"id": 2, "title": {"rendered": ""}, "slug": "untitled", "link": "https://x.test/untitled/", "parent": 1, "type": "page", "status": "draft"}
			]`)
		default:
			fmt.Fprint(w, `[{"id": 3, "title": {"rendered": "Contact"}, "slug": "contact", "link": "https://x.test/contact/", "parent": 1, "type": "page", "status": "future"}]`)
		}
	})

	mux.HandleFunc("/wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 10, "title": {"rendered": "News"}, "slug": "news", "link": "https://x.test/news/", "type": "post", "status": "publish"}]`)
	})

	mux.HandleFunc("/wp-json/wp/v2/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	mux.HandleFunc("/wp-json/wp/v2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			http.Error(w, "", http.StatusMethodNotAllowed)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{" example.com/ ", "https://example.com"},
		{"http://example.com/", "http://example.com"},
		{"https://example.com/blog", "https://example.com/blog"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClient_ContentTypes(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	types, err := c.ContentTypes(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(types) != 2 || types[0].Slug != "page" || types[1].RestBase != "posts" {
		t.Errorf("unexpected types %+v", types)
	}
	if !types[0].Hierarchical {
		t.Error("expected pages hierarchical")
	}
}

func TestClient_FetchPage(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL + "/")
	pages := domain.ContentType{Slug: "page", RestBase: "pages"}

	batch, err := c.FetchPage(context.Background(), pages, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if batch.TotalPages != 2 || batch.Total != 3 || len(batch.Nodes) != 2 {
		t.Fatalf("unexpected batch %+v", batch)
	}

	home := batch.Nodes[0]
	if home.ID != "1" || home.ParentID != nil || home.Status != domain.StatusPublish {
		t.Errorf("unexpected home node %+v", home)
	}
	if home.Title != "Tom & Jerry’s Firm" {
		t.Errorf("expected decoded title, got %q", home.Title)
	}
	if home.ContentExcerpt != "Hello world" {
		t.Errorf("expected plain excerpt, got %q", home.ContentExcerpt)
	}
	if home.ManualTags == nil || len(home.ManualTags) != 0 {
		t.Errorf("expected empty tags, got %v", home.ManualTags)
	}

	untitled := batch.Nodes[1]
	if untitled.Title != noTitle || untitled.ParentID == nil || *untitled.ParentID != "1" {
		t.Errorf("unexpected untitled node %+v", untitled)
	}

	batch, err = c.FetchPage(context.Background(), pages, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Nodes[0].Status != domain.StatusFuture || batch.Nodes[0].Status.IsPublished() {
		t.Errorf("expected future status kept, got %q", batch.Nodes[0].Status)
	}
}

func TestClient_FetchPage_NoHeaders(t *testing.T) {
	srv := newTestServer(t)

	batch, err := NewClient(srv.URL).FetchPage(context.Background(), domain.ContentType{RestBase: "posts"}, 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	if batch.TotalPages != 1 || batch.Total != 0 {
		t.Errorf("expected defaults without headers, got %+v", batch)
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	_, err := c.FetchPage(context.Background(), domain.ContentType{RestBase: "broken"}, 1, 100)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError || statusErr.Error() != "failed to fetch broken: 500 Internal Server Error" {
		t.Errorf("unexpected error %q", statusErr.Error())
	}

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("expected ping to succeed, got %v", err)
	}
	if err := NewClient(srv.URL + "/missing").Ping(context.Background()); err == nil {
		t.Error("expected ping against a missing API to fail")
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain", "Plain"},
		{"A &amp; B", "A & B"},
		{"<p>One</p>\n<p>Two</p>", "One Two"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
