// Implements the host document the shapes are drawn into:
// an element tree with lookup by identifier, attribute access,
// element creation and removal. The tree is a golang.org/x/net/html
// node tree, so a document may come from a parsed HTML page embedding
// an <svg> tag, or be built from scratch.
package svgdoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/drawsvg/svgpath"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

var (
	ErrElementNotFound   = errors.New("element not found")
	ErrContainerNotFound = errors.New("container element not found")
	ErrDuplicateID       = errors.New("identifier already in use")
	ErrNotPath           = errors.New("element is not a path")
	ErrKindMismatch      = errors.New("element has another kind")
	ErrUnknownKind       = errors.New("unknown element kind")
)

// Kind is the kind of primitive a visual element holds.
type Kind uint8

const (
	NoKind Kind = iota // any tag not handled by this package
	Path
	Ellipse
)

func (k Kind) String() string {
	switch k {
	case Path:
		return "path"
	case Ellipse:
		return "ellipse"
	default:
		return "<unknown Kind>"
	}
}

// kindOf maps a tag name to its kind.
func kindOf(tag string) Kind {
	switch tag {
	case "path":
		return Path
	case "ellipse":
		return Ellipse
	default:
		return NoKind
	}
}

// Style holds the presentation attributes given to created elements.
type Style struct {
	StrokeWidth string
	StrokeColor string
	Fill        string
}

// DefaultStyle is a green 4px stroke without fill.
var DefaultStyle = Style{StrokeWidth: "4px", StrokeColor: "green", Fill: "none"}

// Element is a handle on a node of the document tree.
type Element struct {
	node *html.Node
}

// Tag returns the tag name, such as "path".
func (e *Element) Tag() string { return e.node.Data }

// Kind returns the kind of the element, or NoKind for
// tags other than path and ellipse.
func (e *Element) Kind() Kind { return kindOf(e.node.Data) }

// ID returns the identifier of the element.
func (e *Element) ID() string { return e.Attr("id") }

// Attr returns the value of the named attribute, or an empty
// string when it is not set.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the named attribute, appending it when missing.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// Children returns the element children of e.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{node: c})
		}
	}
	return out
}

// Text returns the concatenated text content of e.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// Document is an element tree with a designated container,
// usually an <svg> tag, receiving the created elements.
type Document struct {
	root      *html.Node
	container *html.Node
}

// New returns a document made of a single <svg> container
// with the given id and size.
func New(id string, width, height float64) *Document {
	svg := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  atom.Svg,
		Data:      "svg",
		Namespace: "svg",
		Attr: []html.Attribute{
			{Key: "id", Val: id},
			{Key: "width", Val: svgpath.FormatNumber(width)},
			{Key: "height", Val: svgpath.FormatNumber(height)},
			{Key: "xmlns", Val: "http://www.w3.org/2000/svg"},
		},
	}
	return &Document{root: svg, container: svg}
}

// Parse reads an HTML (or bare SVG) document from r, and use
// the element identified by containerID as container.
// The input encoding is detected from its content.
func Parse(r io.Reader, containerID string) (*Document, error) {
	utf8, err := charset.NewReader(r, "")
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(utf8)
	if err != nil {
		return nil, err
	}
	container := findByID(root, containerID)
	if container == nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, containerID)
	}
	return &Document{root: root, container: container}, nil
}

// findByID walks the tree rooted at n in document order.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Container returns the element receiving created shapes.
func (d *Document) Container() *Element { return &Element{node: d.container} }

// ElementByID returns the element with the given identifier, looked up in
// the whole document.
func (d *Document) ElementByID(id string) (*Element, error) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	return &Element{node: n}, nil
}

// Create appends a new element of the given kind to the container.
// The identifier must not be used yet.
func (d *Document) Create(kind Kind, id string, style Style) (*Element, error) {
	if findByID(d.root, id) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	n, err := newNode(kind, id, style)
	if err != nil {
		return nil, err
	}
	d.container.AppendChild(n)
	return &Element{node: n}, nil
}

// Remove deletes the identified element from the tree. Only path and
// ellipse elements are removable: for other tags, Remove does nothing
// and returns false.
func (d *Document) Remove(id string) (bool, error) {
	e, err := d.ElementByID(id)
	if err != nil {
		return false, err
	}
	if e.Kind() == NoKind || e.node.Parent == nil {
		return false, nil
	}
	e.node.Parent.RemoveChild(e.node)
	return true, nil
}

// Clear removes every child of the container.
func (d *Document) Clear() {
	for c := d.container.FirstChild; c != nil; c = d.container.FirstChild {
		d.container.RemoveChild(c)
	}
}

// Elements returns the element descendants of the container,
// in document order.
func (d *Document) Elements() []*Element {
	var out []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			out = append(out, &Element{node: c})
			walk(c)
		}
	}
	walk(d.container)
	return out
}

// PathData returns the 'd' attribute of the identified path.
func (d *Document) PathData(id string) (string, error) {
	e, err := d.pathElement(id)
	if err != nil {
		return "", err
	}
	return e.Attr("d"), nil
}

// SetPathData replaces the 'd' attribute of the identified path.
func (d *Document) SetPathData(id, data string) error {
	e, err := d.pathElement(id)
	if err != nil {
		return err
	}
	e.SetAttr("d", data)
	return nil
}

func (d *Document) pathElement(id string) (*Element, error) {
	e, err := d.ElementByID(id)
	if err != nil {
		return nil, err
	}
	if e.Kind() != Path {
		return nil, fmt.Errorf("%w: %q is a <%s>", ErrNotPath, id, e.Tag())
	}
	return e, nil
}

// Render writes the container and its content as markup.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.container)
}
