package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xh3b4sd/logger/fake"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/metric"
	"github.com/venturemark/blogworker/pkg/sanitize"
)

var upstreamError = &tracer.Error{
	Kind: "upstreamError",
}

type fakeGateway struct {
	mutex sync.Mutex

	calls int
	err   error
	posts map[string]gateway.Post
}

func (f *fakeGateway) ListPosts(ctx context.Context, cursor string, pageSize int) (*gateway.PostList, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	l := &gateway.PostList{Posts: []gateway.Post{}}
	for _, k := range []string{"first", "second"} {
		if p, ok := f.posts[k]; ok {
			l.Posts = append(l.Posts, p)
		}
	}

	return l, nil
}

func (f *fakeGateway) GetPost(ctx context.Context, slugOrID string) (*gateway.Post, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	p, ok := f.posts[slugOrID]
	if !ok {
		return nil, tracer.Mask(gatewayNotFound(slugOrID))
	}

	return &p, nil
}

func (f *fakeGateway) RenderPost(ctx context.Context, slugOrID string) (*gateway.Rendered, error) {
	p, err := f.GetPost(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	return gateway.NewRendered(p), nil
}

type fakeScheduler struct {
	slugs []string
}

func (f *fakeScheduler) Schedule(ctx context.Context, slug string) error {
	f.slugs = append(f.slugs, slug)
	return nil
}

// gatewayNotFound produces the gateway's own not found error by asking a
// gateway for a post that does not exist.
func gatewayNotFound(key string) error {
	g, err := gateway.New(gateway.Config{
		Logger:     fake.New(),
		Notion:     emptyNotion{},
		DatabaseID: "db",
	})
	if err != nil {
		return err
	}

	_, err = g.GetPost(context.Background(), key)
	return err
}

func newServer(t *testing.T, g gateway.Interface, s Scheduler, origin string) (*Server, *cache.Cache) {
	return newServerWithStorage(t, g, s, origin, cache.NewMemoryStorage())
}

func newServerWithStorage(t *testing.T, g gateway.Interface, s Scheduler, origin string, st cache.Storage) (*Server, *cache.Cache) {
	c, err := cache.New(cache.Config{
		Logger:  fake.New(),
		Storage: st,
		TTL:     cache.DefaultTTL,
	})
	if err != nil {
		t.Fatal(err)
	}

	srv, err := New(Config{
		Cache:     c,
		Gateway:   g,
		Logger:    fake.New(),
		Metric:    metric.New(),
		Scheduler: s,

		AllowedOrigin: origin,
		ErrCha:        make(chan error, 1),
		HTTPHost:      "127.0.0.1",
		HTTPPort:      "0",
	})
	if err != nil {
		t.Fatal(err)
	}

	return srv, c
}

func serve(srv *Server, method string, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	return rec
}

func Test_Server_Errors(t *testing.T) {
	testCases := []struct {
		gateway  *fakeGateway
		target   string
		code     int
		expected string
	}{
		// Case 0
		{
			gateway:  &fakeGateway{},
			target:   "/unknown",
			code:     http.StatusNotFound,
			expected: `{"error":"Not Found"}`,
		},
		// Case 1
		{
			gateway:  &fakeGateway{},
			target:   "/posts/missing",
			code:     http.StatusNotFound,
			expected: `{"error":"Post not found"}`,
		},
		// Case 2
		{
			gateway:  &fakeGateway{err: upstreamError},
			target:   "/posts",
			code:     http.StatusInternalServerError,
			expected: `{"error":"Internal Server Error"}`,
		},
		// Case 3
		{
			gateway:  &fakeGateway{},
			target:   "/posts/missing/html",
			code:     http.StatusNotFound,
			expected: `{"error":"Post not found"}`,
		},
	}

	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			srv, _ := newServer(t, tc.gateway, nil, "")

			rec := serve(srv, http.MethodGet, tc.target, nil)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !cmp.Equal(tc.expected, rec.Body.String()) {
				t.Fatal(cmp.Diff(tc.expected, rec.Body.String()))
			}
			if rec.Header().Get("Cache-Control") != "" {
				t.Fatal("expected failures not to be cacheable")
			}
		})
	}
}

func Test_Server_Options(t *testing.T) {
	testCases := []struct {
		origin   string
		expected string
	}{
		// Case 0
		{
			origin:   "",
			expected: "*",
		},
		// Case 1
		{
			origin:   "https://blog.example.com",
			expected: "https://blog.example.com",
		},
	}

	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			srv, _ := newServer(t, &fakeGateway{}, nil, tc.origin)

			rec := serve(srv, http.MethodOptions, "/posts/anything", map[string]string{
				"Origin":                        "https://blog.example.com",
				"Access-Control-Request-Method": http.MethodGet,
			})

			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != tc.expected {
				t.Fatalf("expected allow origin %q, got %q", tc.expected, rec.Header().Get("Access-Control-Allow-Origin"))
			}
			if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet) {
				t.Fatal("expected GET to be allowed")
			}
		})
	}
}

func Test_Server_Options_NoOrigin(t *testing.T) {
	srv, _ := newServer(t, &fakeGateway{}, nil, "")

	rec := serve(srv, http.MethodOptions, "/whatever", nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func Test_Server_Post_Cached(t *testing.T) {
	g := &fakeGateway{
		posts: map[string]gateway.Post{
			"first": {ID: "1", Title: "First", Tags: []string{}, Slug: "first"},
		},
	}

	srv, _ := newServer(t, g, nil, "")

	var bodies []string
	for i := 0; i < 2; i++ {
		rec := serve(srv, http.MethodGet, "/posts/first", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
		}
		if rec.Header().Get("Cache-Control") != "s-maxage=300" {
			t.Fatalf("unexpected cache control %q", rec.Header().Get("Cache-Control"))
		}
		if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
			t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
		}

		bodies = append(bodies, rec.Body.String())
	}

	if g.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", g.calls)
	}
	if bodies[0] != bodies[1] {
		t.Fatal(cmp.Diff(bodies[0], bodies[1]))
	}

	var p gateway.Post
	err := json.Unmarshal([]byte(bodies[0]), &p)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "First" {
		t.Fatalf("unexpected post %#v", p)
	}
}

func Test_Server_HTML(t *testing.T) {
	g := &fakeGateway{
		posts: map[string]gateway.Post{
			"first": {
				ID:    "1",
				Title: "First",
				Slug:  "first",
				Blocks: gatewayBlocks(
					`[{"id":"a","type":"paragraph","paragraph":{"rich_text":[{"type":"text","plain_text":"click","href":"javascript:alert(1)","annotations":{"color":"default"}}]}}]`,
				),
			},
		},
	}

	srv, _ := newServer(t, g, nil, "")

	rec := serve(srv, http.MethodGet, "/posts/first/html", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var f sanitize.Fragment
	err := json.Unmarshal(rec.Body.Bytes(), &f)
	if err != nil {
		t.Fatal(err)
	}

	if f.ID != "1" || f.Slug != "first" {
		t.Fatalf("unexpected fragment %#v", f)
	}
	if strings.Contains(f.HTML, "javascript") {
		t.Fatalf("expected unsafe link to be stripped, got %s", f.HTML)
	}
	if !strings.Contains(f.HTML, "click") {
		t.Fatalf("expected link text to survive, got %s", f.HTML)
	}
}

func Test_Server_List_Schedule(t *testing.T) {
	g := &fakeGateway{
		posts: map[string]gateway.Post{
			"first":  {ID: "1", Title: "First", Tags: []string{}, Slug: "first"},
			"second": {ID: "2", Title: "Second", Tags: []string{}, Slug: "second"},
		},
	}
	s := &fakeScheduler{}

	srv, c := newServer(t, g, s, "")

	err := c.Create(context.Background(), cache.PostKey("second"), cache.Entry{Body: "{}", ContentType: cache.ContentTypeJSON})
	if err != nil {
		t.Fatal(err)
	}

	rec := serve(srv, http.MethodGet, "/posts?page_size=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var l gateway.PostList
	err = json.Unmarshal(rec.Body.Bytes(), &l)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Posts) != 2 || l.NextCursor != nil {
		t.Fatalf("unexpected list %#v", l)
	}

	if !cmp.Equal([]string{"first"}, s.slugs) {
		t.Fatal(cmp.Diff([]string{"first"}, s.slugs))
	}
}

func Test_Server_List_IgnoredParameters(t *testing.T) {
	g := &fakeGateway{
		posts: map[string]gateway.Post{
			"first": {ID: "1", Title: "First", Tags: []string{}, Slug: "first"},
		},
	}
	st := cache.NewMemoryStorage()

	srv, _ := newServerWithStorage(t, g, nil, "", st)

	for i := 0; i < 50; i++ {
		rec := serve(srv, http.MethodGet, "/posts?junk="+strconv.Itoa(i), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
		}
	}

	// Explicit defaults resolve to the same page.
	_ = serve(srv, http.MethodGet, "/posts?page_size=12", nil)
	_ = serve(srv, http.MethodGet, "/posts?page_size=abc", nil)

	if g.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", g.calls)
	}
	if st.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", st.Len())
	}
}

func Test_Server_Post_IgnoredParameters(t *testing.T) {
	g := &fakeGateway{
		posts: map[string]gateway.Post{
			"first": {ID: "1", Title: "First", Tags: []string{}, Slug: "first"},
		},
	}
	st := cache.NewMemoryStorage()

	srv, _ := newServerWithStorage(t, g, nil, "", st)

	_ = serve(srv, http.MethodGet, "/posts/first?a=1", nil)
	_ = serve(srv, http.MethodGet, "/posts/first?a=2", nil)

	if g.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", g.calls)
	}
	if st.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", st.Len())
	}
}

func Test_Server_List_Schedule_Once(t *testing.T) {
	g := &fakeGateway{
		posts: map[string]gateway.Post{
			"first":  {ID: "1", Title: "First", Tags: []string{}, Slug: "first"},
			"second": {ID: "2", Title: "Second", Tags: []string{}, Slug: "second"},
		},
	}
	s := &fakeScheduler{}

	srv, _ := newServer(t, g, s, "")

	// Different page sizes miss the listing cache twice before any prefetch
	// ran.
	_ = serve(srv, http.MethodGet, "/posts?page_size=2", nil)
	_ = serve(srv, http.MethodGet, "/posts?page_size=3", nil)

	if g.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", g.calls)
	}

	expected := []string{"first", "second"}
	if !cmp.Equal(expected, s.slugs) {
		t.Fatal(cmp.Diff(expected, s.slugs))
	}
}

func Test_Server_Metrics(t *testing.T) {
	srv, _ := newServer(t, &fakeGateway{}, nil, "")

	_ = serve(srv, http.MethodGet, "/posts/missing", nil)

	rec := serve(srv, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `blogworker_requests_total{code="404",route="/posts/:slugOrId"} 1`) {
		t.Fatalf("expected request counter, got %s", rec.Body.String())
	}
}

func Test_New_InvalidConfig(t *testing.T) {
	_, err := New(Config{})
	if !IsInvalidConfig(err) {
		t.Fatalf("expected invalid config error, got %#v", err)
	}
}
