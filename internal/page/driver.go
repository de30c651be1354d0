package page

import (
	"context"
	"fmt"

	"assetmirror/internal/services"
)

// ErrStaleElement reports a handle that no longer refers to the loaded page.
var ErrStaleElement = fmt.Errorf("page element is stale: %w", services.ErrStaleElement)

// Element is an opaque handle issued by a Driver.
type Element struct {
	Generation uint64
	Index      int
}

// Scroll describes the vertical scroll state of the loaded page.
type Scroll struct {
	Height   int
	Position int
}

// Driver is the page capability set used by classification and scanning.
// A nil scope on FindAll searches the whole document.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL() string
	FindAll(ctx context.Context, scope *Element, tag string) ([]Element, error)
	Attribute(ctx context.Context, el Element, name string) (string, error)
	Text(ctx context.Context, el Element) (string, error)
	Style(ctx context.Context, el Element, property string) (string, error)
	ScrollMetrics(ctx context.Context) (Scroll, error)
	ScrollTo(ctx context.Context, position int) error
	Close() error
}

// Stale builds the error returned for a handle from an earlier page load.
func Stale(op string, el Element) error {
	return fmt.Errorf("%s: element %d from generation %d: %w", op, el.Index, el.Generation, ErrStaleElement)
}
