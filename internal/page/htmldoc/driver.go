// Package htmldoc implements page.Driver over static HTML fetched with
// net/http (or read from file:// URLs) and parsed with golang.org/x/net/html.
//
// It does not run scripts. Listings that build their markup client side must
// be saved to disk first or served pre-rendered.
package htmldoc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"

	"assetmirror/internal/page"
	"assetmirror/internal/services"
)

// lineHeight is the synthetic pixel height attributed to each element so
// scrolling terminates on static documents.
const lineHeight = 20

const maxDocumentBytes = 32 << 20

// Options configures a Driver.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

// Driver is a page.Driver backed by a parsed HTML document.
type Driver struct {
	client     *http.Client
	userAgent  string
	base       *url.URL
	root       *html.Node
	handles    []*html.Node
	issued     map[*html.Node]int
	generation uint64
	height     int
	position   int
}

var _ page.Driver = (*Driver)(nil)

// New builds a driver. A nil Options.Client gets a client with Options.Timeout.
func New(opts Options) *Driver {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Driver{
		client:    client,
		userAgent: strings.TrimSpace(opts.UserAgent),
	}
}

// Navigate loads rawURL and invalidates every handle issued so far.
func (d *Driver) Navigate(ctx context.Context, rawURL string) error {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return services.Wrap(services.ErrValidation, "page", "navigate", fmt.Sprintf("parse url %q", rawURL), err)
	}
	body, err := d.load(ctx, target)
	if err != nil {
		return err
	}
	defer body.Close()

	root, err := html.Parse(io.LimitReader(body, maxDocumentBytes))
	if err != nil {
		return services.Wrap(services.ErrTransient, "page", "navigate", "parse html", err)
	}

	d.generation++
	d.base = target
	d.root = root
	d.handles = d.handles[:0]
	d.issued = make(map[*html.Node]int)
	d.position = 0
	d.height = countElements(root) * lineHeight
	return nil
}

func (d *Driver) load(ctx context.Context, target *url.URL) (io.ReadCloser, error) {
	switch target.Scheme {
	case "file":
		f, err := os.Open(target.Path)
		if err != nil {
			return nil, services.Wrap(services.ErrNotFound, "page", "navigate", target.Path, err)
		}
		return f, nil
	case "http", "https":
	default:
		return nil, services.Wrap(services.ErrValidation, "page", "navigate", fmt.Sprintf("unsupported scheme %q", target.Scheme), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "page", "navigate", "build request", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrTimeout, "page", "navigate", target.String(), err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		_ = resp.Body.Close()
		marker := services.ErrTransient
		if resp.StatusCode == http.StatusNotFound {
			marker = services.ErrNotFound
		}
		return nil, services.Wrap(marker, "page", "navigate", fmt.Sprintf("%s returned %s", target, resp.Status), nil)
	}
	return resp.Body, nil
}

// CurrentURL returns the address of the loaded document.
func (d *Driver) CurrentURL() string {
	if d.base == nil {
		return ""
	}
	return d.base.String()
}

// FindAll returns descendants of scope (or the whole document) with the tag
// name, in document order. "*" matches any element.
func (d *Driver) FindAll(_ context.Context, scope *page.Element, tag string) ([]page.Element, error) {
	if d.root == nil {
		return nil, services.Wrap(services.ErrValidation, "page", "find", "no page loaded", nil)
	}
	start := d.root
	if scope != nil {
		node, err := d.node("find", *scope)
		if err != nil {
			return nil, err
		}
		start = node
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	var out []page.Element
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (tag == "*" || c.Data == tag) {
				out = append(out, d.issue(c))
			}
			visit(c)
		}
	}
	visit(start)
	return out, nil
}

// Attribute returns the attribute value, or "" when absent. href and src are
// resolved against the page address the way a browser reports them.
func (d *Driver) Attribute(_ context.Context, el page.Element, name string) (string, error) {
	node, err := d.node("attribute", el)
	if err != nil {
		return "", err
	}
	name = strings.ToLower(name)
	value, ok := attr(node, name)
	if !ok {
		return "", nil
	}
	if name == "href" || name == "src" {
		return d.resolve(value), nil
	}
	return value, nil
}

// Text renders the element's visible text, one line per non-blank text node.
func (d *Driver) Text(_ context.Context, el page.Element) (string, error) {
	node, err := d.node("text", el)
	if err != nil {
		return "", err
	}
	var lines []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				for _, line := range strings.Split(c.Data, "\n") {
					if line = strings.Join(strings.Fields(line), " "); line != "" {
						lines = append(lines, line)
					}
				}
			case html.ElementNode:
				if c.Data == "script" || c.Data == "style" {
					continue
				}
				visit(c)
			}
		}
	}
	visit(node)
	return strings.Join(lines, "\n"), nil
}

// Style reads a property from the inline style attribute. Missing properties
// report "none" like a computed style would for background-image.
func (d *Driver) Style(_ context.Context, el page.Element, property string) (string, error) {
	node, err := d.node("style", el)
	if err != nil {
		return "", err
	}
	inline, _ := attr(node, "style")
	value, ok := lookupDeclaration(inline, property)
	if !ok {
		return "none", nil
	}
	if raw := page.BackgroundImageURL(value); raw != "" {
		if ref, err := url.Parse(raw); err == nil && !ref.IsAbs() {
			value = strings.Replace(value, raw, d.resolve(raw), 1)
		}
	}
	return value, nil
}

// ScrollMetrics reports the synthetic document height and scroll position.
func (d *Driver) ScrollMetrics(context.Context) (page.Scroll, error) {
	return page.Scroll{Height: d.height, Position: d.position}, nil
}

// ScrollTo moves the synthetic viewport, clamped to the document.
func (d *Driver) ScrollTo(_ context.Context, position int) error {
	d.position = min(max(position, 0), d.height)
	return nil
}

// Close releases idle connections.
func (d *Driver) Close() error {
	d.client.CloseIdleConnections()
	d.root = nil
	d.handles = nil
	d.issued = nil
	return nil
}

func (d *Driver) issue(n *html.Node) page.Element {
	if idx, ok := d.issued[n]; ok {
		return page.Element{Generation: d.generation, Index: idx}
	}
	d.handles = append(d.handles, n)
	idx := len(d.handles) - 1
	d.issued[n] = idx
	return page.Element{Generation: d.generation, Index: idx}
}

func (d *Driver) node(op string, el page.Element) (*html.Node, error) {
	if el.Generation != d.generation || el.Index < 0 || el.Index >= len(d.handles) {
		return nil, page.Stale(op, el)
	}
	return d.handles[el.Index], nil
}

func (d *Driver) resolve(ref string) string {
	if d.base == nil {
		return ref
	}
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return d.base.ResolveReference(parsed).String()
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func lookupDeclaration(style, property string) (string, bool) {
	property = strings.ToLower(strings.TrimSpace(property))
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.ToLower(strings.TrimSpace(name)) == property {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func countElements(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
		count += countElements(c)
	}
	return count
}
