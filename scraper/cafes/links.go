package cafes

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractListingLinks returns the hrefs of every anchor inside the container
// elements with the given ids, containers in argument order and anchors in
// document order, keeping only hrefs that start with prefix. Duplicates are
// kept. A missing container contributes nothing.
func ExtractListingLinks(page, prefix string, containerIDs ...string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("links: parse html: %w", err)
	}

	var links []string
	for _, id := range containerIDs {
		doc.Find("#" + id).First().Find("a").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if ok && strings.HasPrefix(href, prefix) {
				links = append(links, href)
			}
		})
	}
	return links, nil
}
