package prefetch

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xh3b4sd/logger/fake"
	"github.com/xh3b4sd/rescue/pkg/task"

	"github.com/venturemark/blogworker/pkg/block"
	"github.com/venturemark/blogworker/pkg/cache"
	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/metadata"
	"github.com/venturemark/blogworker/pkg/notion"
	"github.com/venturemark/blogworker/pkg/sanitize"
)

const (
	pageID = "3f1c2b9e-8a6d-4c1e-9b7a-1d2e3f4a5b6c"
)

type fakeNotion struct {
	pages []notion.Page
}

func (f *fakeNotion) QueryDatabase(ctx context.Context, databaseID string, q notion.Query) (*notion.PageList, error) {
	return &notion.PageList{Results: f.pages}, nil
}

func (f *fakeNotion) RetrievePage(ctx context.Context, pageID string) (*notion.Page, error) {
	for _, p := range f.pages {
		if p.ID == pageID {
			return &p, nil
		}
	}

	return &notion.Page{Object: "page", ID: pageID}, nil
}

func (f *fakeNotion) ListChildren(ctx context.Context, blockID string, cursor string, pageSize int) (*notion.BlockList, error) {
	b := block.Block{
		ID:      "b",
		Type:    block.TypeParagraph,
		Payload: block.Paragraph{RichText: []block.RichText{{Kind: block.KindText, PlainText: "hello"}}},
	}

	return &notion.BlockList{Results: block.Blocks{b}}, nil
}

type fakeCreator struct {
	tasks []*task.Task
}

func (f *fakeCreator) Create(tsk *task.Task) error {
	f.tasks = append(f.tasks, tsk)
	return nil
}

func newHandler(t *testing.T, pages []notion.Page) (*Handler, *cache.Cache) {
	g, err := gateway.New(gateway.Config{
		Logger:     fake.New(),
		Notion:     &fakeNotion{pages: pages},
		DatabaseID: "db",
		MaxDepth:   gateway.DefaultMaxDepth,
	})
	if err != nil {
		t.Fatal(err)
	}

	c, err := cache.New(cache.Config{
		Logger:  fake.New(),
		Storage: cache.NewMemoryStorage(),
		TTL:     cache.DefaultTTL,
	})
	if err != nil {
		t.Fatal(err)
	}

	h, err := NewHandler(HandlerConfig{
		Cache:   c,
		Gateway: g,
		Logger:  fake.New(),

		Timeout: DefaultTimeout,
	})
	if err != nil {
		t.Fatal(err)
	}

	return h, c
}

func Test_Handler_Filter(t *testing.T) {
	testCases := []struct {
		met    map[string]string
		filter bool
	}{
		// Case 0
		{
			met:    NewTask("hello").Obj.Metadata,
			filter: true,
		},
		// Case 1
		{
			met: map[string]string{
				metadata.TaskAction:   "delete",
				metadata.TaskResource: "post",
			},
			filter: false,
		},
		// Case 2
		{
			met:    map[string]string{},
			filter: false,
		},
	}

	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			h, _ := newHandler(t, nil)

			f := h.Filter(&task.Task{Obj: task.TaskObj{Metadata: tc.met}})
			if f != tc.filter {
				t.Fatalf("expected %t", tc.filter)
			}
		})
	}
}

func Test_Handler_Ensure(t *testing.T) {
	pages := []notion.Page{
		{
			Object: "page",
			ID:     pageID,
			Properties: map[string]notion.Property{
				"Title": {Title: []block.RichText{{PlainText: "Hello"}}},
				"Slug":  {RichText: []block.RichText{{PlainText: "hello"}}},
			},
		},
	}

	h, c := newHandler(t, pages)

	err := h.Ensure(NewTask("hello"))
	if err != nil {
		t.Fatal(err)
	}

	{
		e, ok, err := c.Search(context.Background(), "/posts/hello")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected post to be cached")
		}

		var p gateway.Post
		err = json.Unmarshal([]byte(e.Body), &p)
		if err != nil {
			t.Fatal(err)
		}
		if p.ID != pageID || p.Title != "Hello" || len(p.Blocks) != 1 {
			t.Fatalf("unexpected post %#v", p)
		}
	}

	{
		e, ok, err := c.Search(context.Background(), "/posts/hello/html")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected fragment to be cached")
		}

		var f sanitize.Fragment
		err = json.Unmarshal([]byte(e.Body), &f)
		if err != nil {
			t.Fatal(err)
		}

		expected := `<p class="notion-paragraph">hello</p>`
		if !cmp.Equal(expected, f.HTML) {
			t.Fatal(cmp.Diff(expected, f.HTML))
		}
	}
}

func Test_Handler_Ensure_NotFound(t *testing.T) {
	h, c := newHandler(t, nil)

	err := h.Ensure(NewTask("missing"))
	if err != nil {
		t.Fatal(err)
	}

	_, ok, err := c.Search(context.Background(), "/posts/missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected nothing to be cached")
	}
}

func Test_Handler_Ensure_InvalidTask(t *testing.T) {
	h, _ := newHandler(t, nil)

	err := h.Ensure(&task.Task{Obj: task.TaskObj{Metadata: map[string]string{}}})
	if !IsInvalidTask(err) {
		t.Fatalf("expected invalid task error, got %#v", err)
	}
}

func Test_Scheduler_Schedule(t *testing.T) {
	r := &fakeCreator{}

	s, err := NewScheduler(SchedulerConfig{Logger: fake.New(), Rescue: r})
	if err != nil {
		t.Fatal(err)
	}

	err = s.Schedule(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}

	if len(r.tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(r.tasks))
	}

	expected := map[string]string{
		metadata.TaskAction:   "prefetch",
		metadata.TaskResource: "post",
		metadata.PostSlug:     "hello",
	}
	if !cmp.Equal(expected, r.tasks[0].Obj.Metadata) {
		t.Fatal(cmp.Diff(expected, r.tasks[0].Obj.Metadata))
	}

	err = s.Schedule(context.Background(), "")
	if !IsInvalidTask(err) {
		t.Fatalf("expected invalid task error, got %#v", err)
	}
}
