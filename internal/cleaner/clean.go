package cleaner

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var builderClasses = []*regexp.Regexp{
	regexp.MustCompile(`^elementor`),
	regexp.MustCompile(`^e-con`),
	regexp.MustCompile(`^e-(flex|grid|parent|child)$`),
	regexp.MustCompile(`^animated(-|$)`),
}

// containers are the generic wrappers the simplification step may delete
// or unwrap.
var containers = []string{"div", "section", "article", "span", "p"}

// Clean runs the pipeline on an HTML fragment and returns the cleaned
// fragment. Script and style elements never survive.
func Clean(raw string, opts Options) string {
	body, err := Parse(raw)
	if err != nil {
		return ""
	}
	Apply(body, opts)
	return dom.InnerHTML(body)
}

// Parse reads an HTML fragment into a detached body element.
func Parse(raw string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(raw), ctx)
	if err != nil {
		return nil, err
	}
	body := dom.CreateElement("body")
	for _, n := range nodes {
		dom.AppendChild(body, n)
	}
	return body, nil
}

// Apply cleans the children of root in place.
func Apply(root *html.Node, opts Options) {
	removeUnsafe(root)
	if opts.RemoveBuilderClasses {
		stripBuilderClasses(root)
	}
	if opts.SimplifyStructure {
		for c := root.FirstChild; c != nil; {
			next := c.NextSibling
			simplify(c)
			c = next
		}
	}
	if opts.ResponsiveImages {
		responsiveImages(root)
	}
	if opts.rewritesLinks() {
		rewriteLinks(root, opts.BaseDomain)
	}
}

func removeUnsafe(root *html.Node) {
	dom.RemoveNodes(dom.GetAllNodesWithTag(root, "script", "style"), nil)
	dom.ForEachNode(dom.GetElementsByTagName(root, "*"), func(n *html.Node, _ int) {
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if strings.HasPrefix(strings.ToLower(a.Key), "on") {
				continue
			}
			if a.Key == "href" && strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				continue
			}
			attrs = append(attrs, a)
		}
		n.Attr = attrs
	})
}

func isBuilderClass(c string) bool {
	for _, re := range builderClasses {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

func stripBuilderClasses(root *html.Node) {
	dom.ForEachNode(dom.QuerySelectorAll(root, "[class]"), func(n *html.Node, _ int) {
		var keep []string
		for _, c := range strings.Fields(dom.ClassName(n)) {
			if !isBuilderClass(c) {
				keep = append(keep, c)
			}
		}
		if len(keep) == 0 {
			dom.RemoveAttribute(n, "class")
			return
		}
		dom.SetAttribute(n, "class", strings.Join(keep, " "))
	})
}

func isContainer(n *html.Node) bool {
	return n.Type == html.ElementNode && slices.Contains(containers, n.Data)
}

// simplify works leaf first: children are simplified (and maybe deleted)
// before n is looked at.
func simplify(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		simplify(c)
		c = next
	}
	if !isContainer(n) || n.Parent == nil {
		return
	}
	children := dom.Children(n)
	if len(children) == 0 {
		if strings.TrimSpace(dom.TextContent(n)) == "" {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if len(children) != 1 || hasOwnText(n) {
		return
	}
	inner := children[0]
	if inner.Data != n.Data || len(inner.Attr) > 0 {
		return
	}
	for c := inner.FirstChild; c != nil; {
		next := c.NextSibling
		inner.RemoveChild(c)
		n.InsertBefore(c, inner)
		c = next
	}
	n.RemoveChild(inner)
}

// hasOwnText reports whether n has non-blank text outside its element children.
func hasOwnText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	classes := strings.Fields(dom.ClassName(n))
	if slices.Contains(classes, class) {
		return
	}
	dom.SetAttribute(n, "class", strings.Join(append(classes, class), " "))
}

func responsiveImages(root *html.Node) {
	dom.ForEachNode(dom.GetElementsByTagName(root, "img"), func(img *html.Node, _ int) {
		addClass(img, "img-responsive")
		dom.SetAttribute(img, "loading", "lazy")
		if w := captionWrapper(img, root); w != nil {
			addClass(w, "responsive-caption")
		}
	})
}

// captionWrapper finds the figure or .wp-caption around an image, at most
// three levels up.
func captionWrapper(img, root *html.Node) *html.Node {
	n := img.Parent
	for depth := 0; n != nil && n != root && depth < 3; depth++ {
		if n.Data == "figure" || slices.Contains(strings.Fields(dom.ClassName(n)), "wp-caption") {
			return n
		}
		n = n.Parent
	}
	return nil
}

func rewriteLinks(root *html.Node, base string) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	dom.ForEachNode(dom.QuerySelectorAll(root, "a[href]"), func(a *html.Node, _ int) {
		href := dom.GetAttribute(a, "href")
		if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
			dom.SetAttribute(a, "href", base+href)
		}
	})
}
