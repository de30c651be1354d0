package testsupport

import (
	"context"
	"fmt"
	"strings"

	"assetmirror/internal/page"
	"assetmirror/internal/services"
)

// Node is one element of a FakePage document.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Style    map[string]string
	Text     string
	Children []*Node
}

// El builds a Node with alternating attribute key/value pairs.
func El(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag, Attrs: map[string]string{}}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs[attrs[i]] = attrs[i+1]
	}
	return n
}

// WithText sets the element's own text.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

// WithStyle sets an inline style property.
func (n *Node) WithStyle(property, value string) *Node {
	if n.Style == nil {
		n.Style = map[string]string{}
	}
	n.Style[property] = value
	return n
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// FakePage is an in-memory page.Driver keyed by URL.
type FakePage struct {
	Pages map[string]*Node
	// StaleText makes Text fail with a stale element on the listed URLs.
	StaleText map[string]bool
	Visits    []string

	current    string
	generation uint64
	handles    []*Node
	position   int
	closed     bool
}

var _ page.Driver = (*FakePage)(nil)

// NewFakePage builds an empty fake driver.
func NewFakePage() *FakePage {
	return &FakePage{Pages: map[string]*Node{}, StaleText: map[string]bool{}}
}

// Set registers the document served for url.
func (f *FakePage) Set(url string, children ...*Node) {
	f.Pages[url] = El("html").Add(children...)
}

// Closed reports whether Close was called.
func (f *FakePage) Closed() bool { return f.closed }

func (f *FakePage) Navigate(_ context.Context, url string) error {
	f.Visits = append(f.Visits, url)
	if _, ok := f.Pages[url]; !ok {
		return services.Wrap(services.ErrNotFound, "page", "navigate", url, nil)
	}
	f.current = url
	f.generation++
	f.handles = nil
	f.position = 0
	return nil
}

func (f *FakePage) CurrentURL() string { return f.current }

func (f *FakePage) FindAll(_ context.Context, scope *page.Element, tag string) ([]page.Element, error) {
	root, ok := f.Pages[f.current]
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "page", "find", "no page loaded", nil)
	}
	if scope != nil {
		n, err := f.node("find", *scope)
		if err != nil {
			return nil, err
		}
		root = n
	}
	var out []page.Element
	var visit func(*Node)
	visit = func(n *Node) {
		for _, c := range n.Children {
			if tag == "*" || c.Tag == tag {
				f.handles = append(f.handles, c)
				out = append(out, page.Element{Generation: f.generation, Index: len(f.handles) - 1})
			}
			visit(c)
		}
	}
	visit(root)
	return out, nil
}

func (f *FakePage) Attribute(_ context.Context, el page.Element, name string) (string, error) {
	n, err := f.node("attribute", el)
	if err != nil {
		return "", err
	}
	return n.Attrs[name], nil
}

func (f *FakePage) Text(_ context.Context, el page.Element) (string, error) {
	n, err := f.node("text", el)
	if err != nil {
		return "", err
	}
	if f.StaleText[f.current] {
		return "", page.Stale("text", el)
	}
	var lines []string
	var visit func(*Node)
	visit = func(n *Node) {
		if t := strings.TrimSpace(n.Text); t != "" {
			lines = append(lines, strings.Split(t, "\n")...)
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(lines, "\n"), nil
}

func (f *FakePage) Style(_ context.Context, el page.Element, property string) (string, error) {
	n, err := f.node("style", el)
	if err != nil {
		return "", err
	}
	if v, ok := n.Style[property]; ok {
		return v, nil
	}
	return "none", nil
}

func (f *FakePage) ScrollMetrics(context.Context) (page.Scroll, error) {
	return page.Scroll{Height: 400, Position: f.position}, nil
}

func (f *FakePage) ScrollTo(_ context.Context, position int) error {
	f.position = position
	return nil
}

func (f *FakePage) Close() error {
	f.closed = true
	return nil
}

func (f *FakePage) node(op string, el page.Element) (*Node, error) {
	if el.Generation != f.generation || el.Index < 0 || el.Index >= len(f.handles) {
		return nil, page.Stale(op, el)
	}
	return f.handles[el.Index], nil
}

// Background formats a css background-image value for url.
func Background(url string) string {
	return fmt.Sprintf("url(%q)", url)
}

// Link builds an anchor with class, href and display text.
func Link(class, href, text string) *Node {
	return El("a", "class", class, "href", href).WithText(text)
}

// Entry builds a listing card: a div with the class, a link, an image and
// one paragraph per text line.
func Entry(class, href, img string, lines ...string) *Node {
	card := El("div", "class", class).Add(
		El("a", "href", href),
		El("img", "src", img),
	)
	for _, line := range lines {
		card.Add(El("p").WithText(line))
	}
	return card
}
