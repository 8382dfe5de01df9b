// Package sources discovers the per-platform pages listed on the site's
// index page. Each discovered system feeds one extraction run; discovery
// itself does no extraction.
package sources

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// System identifies one platform page: a stable key, a display title
// taken from the link text, and the page URL. Immutable once created.
type System struct {
	Key   string
	Title string
	URL   string
}

// keyRe is the shape of a valid system key ("md", "psp", "psvall", ...).
var keyRe = regexp.MustCompile(`^[a-z0-9]+$`)

// navKeys are link targets on the index page that look like system keys
// but are site navigation, not platforms.
var navKeys = map[string]struct{}{
	"javascript": {},
	"all":        {},
	"jd":         {},
	"quanji":     {},
	"class":      {},
	"dz":         {},
	"article":    {},
	"list":       {},
	"index":      {},
}

var innerSpaceRe = regexp.MustCompile(`\s+`)

// Discover enumerates system links from the index page HTML. Links may be
// absolute paths under the base URL or bare relative keys; duplicates
// keep the first occurrence. The returned slice is sorted by key.
func Discover(indexHTML, baseURL string) ([]System, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(indexHTML))
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	seen := make(map[string]struct{})
	var systems []System

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")

		key, ok := keyFromHref(href, base.Path)
		if !ok {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		pageURL := *base
		pageURL.Path = joinPath(base.Path, key) + "/"

		systems = append(systems, System{
			Key:   key,
			Title: innerSpaceRe.ReplaceAllString(strings.TrimSpace(sel.Text()), " "),
			URL:   pageURL.String(),
		})
	})

	sort.Slice(systems, func(i, j int) bool { return systems[i].Key < systems[j].Key })

	return systems, nil
}

// keyFromHref extracts a candidate system key from a link target.
// Accepted shapes: a bare relative key ("psp", "psp/") or an absolute
// path directly under the index page ("/dz/psp/").
func keyFromHref(href, basePath string) (string, bool) {
	href = strings.TrimSpace(href)

	if rest, ok := strings.CutPrefix(href, basePath); ok && href != rest {
		href = rest
	}

	key := strings.ToLower(strings.Trim(href, "/"))
	if !keyRe.MatchString(key) {
		return "", false
	}
	if _, nav := navKeys[key]; nav {
		return "", false
	}
	return key, true
}

func joinPath(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + key
}
