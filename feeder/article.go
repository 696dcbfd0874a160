package feeder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const maxArticleBytes = 5 << 20

// Article is what the importer can recover from an item's web page.
type Article struct {
	Text    string
	Excerpt string
	Image   string
}

// FetchArticle downloads pageURL and extracts its readable text and top image.
func FetchArticle(ctx context.Context, pageURL string, opts Options) (Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Article{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := opts.client().Do(req)
	if err != nil {
		return Article{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Article{}, fmt.Errorf("fetch article %s: status %d", pageURL, resp.StatusCode)
	}

	return ParseArticle(io.LimitReader(resp.Body, maxArticleBytes), pageURL)
}

// ParseArticle extracts text and top image from an html document. Image lookup
// order: readability's pick, og/twitter meta, link rel=image_src.
func ParseArticle(r io.Reader, pageURL string) (Article, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Article{}, err
	}

	var base *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			base = u
		}
	}

	var out Article
	if article, err := readability.FromDocument(doc, base); err == nil {
		out.Text = strings.TrimSpace(article.TextContent)
		out.Excerpt = strings.TrimSpace(article.Excerpt)
		out.Image = article.Image
	}
	if out.Image == "" {
		out.Image = findMetaImage(doc)
	}
	if out.Image == "" {
		out.Image = findLinkImage(doc)
	}
	out.Image = resolveURL(out.Image, base)
	return out, nil
}

// 우선순위: Open Graph → Twitter 카드 → itemprop
func findMetaImage(doc *html.Node) string {
	for _, c := range []struct {
		attr   string
		values []string
	}{
		{"property", []string{"og:image", "og:image:url", "og:image:secure_url"}},
		{"name", []string{"twitter:image", "twitter:image:src", "thumbnail"}},
		{"itemprop", []string{"image"}},
	} {
		if v := findMetaContent(doc, c.attr, c.values); v != "" {
			return v
		}
	}
	return ""
}

func findMetaContent(root *html.Node, key string, candidates []string) string {
	want := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		want[c] = struct{}{}
	}

	var result string
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return false
		}
		var attrValue, content string
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case key:
				attrValue = strings.ToLower(a.Val)
			case "content":
				content = a.Val
			}
		}
		if _, ok := want[attrValue]; ok && content != "" {
			result = content
			return true
		}
		return false
	})
	return result
}

func findLinkImage(root *html.Node) string {
	var result string
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "link" {
			return false
		}
		var rel, href string
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case "rel":
				rel = strings.ToLower(a.Val)
			case "href":
				href = a.Val
			}
		}
		if href != "" && (rel == "image_src" || strings.Contains(rel, "thumbnail")) {
			result = href
			return true
		}
		return false
	})
	return result
}

// walk visits nodes depth-first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return false
	}
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func resolveURL(src string, base *url.URL) string {
	src = strings.TrimSpace(src)
	if src == "" || base == nil {
		return src
	}
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(u).String()
}
