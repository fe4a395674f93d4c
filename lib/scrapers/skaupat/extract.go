package skaupat

import (
	"fmt"

	"beerwatch-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// product card locators, most likely one still works. tried in order, the
// first one that matches anything wins for the whole page so overlapping
// selectors never double-count a card.
var cardSelectors = []string{
	"div[data-testid='product-card']",
	"article[class*='product']",
	"div[class*='ProductCard']",
	"div[class*='productCard']",
	".product-item",
	"li[class*='product']",
}

var nameSelectors = []string{
	"h3",
	"h4",
	"[class*='name']",
	"[class*='title']",
	"a[class*='name']",
}

var priceSelectors = []string{
	"[data-testid='price']",
	"[class*='price']",
	".price-amount",
	"span[class*='value']",
	"[class*='price__value']",
	"strong",
	".price",
}

var nextPageSelectors = []string{
	"a[aria-label*='seuraava']",
	"a[class*='next']",
	"[rel='next']",
	"button[class*='next']",
	"a[href*='page=']",
}

// ExtractCandidates pulls raw (name, price text) pairs out of a catalogue
// page. a page where no card selector matches at all is structural drift,
// not an empty page.
func ExtractCandidates(doc *goquery.Document) ([]Candidate, error) {
	var cards *goquery.Selection
	for _, selector := range cardSelectors {
		found := doc.Find(selector)
		if found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil, fmt.Errorf("%w: tried %d card selectors", ErrStructuralDrift, len(cardSelectors))
	}

	var candidates []Candidate
	cards.Each(func(_ int, card *goquery.Selection) {
		candidates = append(candidates, Candidate{
			Name:      htmlutil.FirstText(card, nameSelectors),
			PriceText: htmlutil.FirstText(card, priceSelectors),
		})
	})
	return candidates, nil
}

// HasNextPage reports whether the page carries any next-page affordance.
func HasNextPage(doc *goquery.Document) bool {
	for _, selector := range nextPageSelectors {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}
