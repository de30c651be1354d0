package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"assetmirror/internal/services"
)

type growingPage struct {
	heights   []int
	calls     int
	positions []int
}

func (g *growingPage) Navigate(context.Context, string) error { return nil }
func (g *growingPage) CurrentURL() string                     { return "" }
func (g *growingPage) FindAll(context.Context, *Element, string) ([]Element, error) {
	return nil, nil
}
func (g *growingPage) Attribute(context.Context, Element, string) (string, error) { return "", nil }
func (g *growingPage) Text(context.Context, Element) (string, error)              { return "", nil }
func (g *growingPage) Style(context.Context, Element, string) (string, error)     { return "", nil }
func (g *growingPage) ScrollMetrics(context.Context) (Scroll, error) {
	idx := g.calls
	if idx >= len(g.heights) {
		idx = len(g.heights) - 1
	}
	g.calls++
	return Scroll{Height: g.heights[idx]}, nil
}
func (g *growingPage) ScrollTo(_ context.Context, position int) error {
	g.positions = append(g.positions, position)
	return nil
}
func (g *growingPage) Close() error { return nil }

func TestScrollToEndFollowsGrowth(t *testing.T) {
	fake := &growingPage{heights: []int{400, 800, 800}}
	if err := ScrollToEnd(context.Background(), fake, 200, 0); err != nil {
		t.Fatalf("ScrollToEnd: %v", err)
	}
	want := []int{0, 200, 400, 600}
	if len(fake.positions) != len(want) {
		t.Fatalf("positions = %v, want %v", fake.positions, want)
	}
	for i := range want {
		if fake.positions[i] != want[i] {
			t.Fatalf("positions = %v, want %v", fake.positions, want)
		}
	}
}

func TestWaitHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Wait(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestBackgroundImageURL(t *testing.T) {
	cases := map[string]string{
		`url("https://cdn.test/a.png?w=200")`: "https://cdn.test/a.png",
		`url('https://cdn.test/b.png')`:       "https://cdn.test/b.png",
		`url(https://cdn.test/c.png)`:         "https://cdn.test/c.png",
		"none":                                "",
		"":                                    "",
	}
	for in, want := range cases {
		if got := BackgroundImageURL(in); got != want {
			t.Fatalf("BackgroundImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStaleWrapsServiceMarker(t *testing.T) {
	err := Stale("text", Element{Generation: 1, Index: 3})
	if !errors.Is(err, ErrStaleElement) || !errors.Is(err, services.ErrStaleElement) {
		t.Fatalf("expected stale markers, got %v", err)
	}
	if services.Classify(err) != services.OutcomeContinue {
		t.Fatal("stale element should continue the pass")
	}
}
