package skaupat

import "errors"

// the storefront redesigns its markup every few months. these errors exist
// so callers can tell "this page has no products" apart from "we can no
// longer find the product grid at all", the latter needs a human to update
// the selector chains.
var ErrStructuralDrift = errors.New("no known selector matched the product grid")

// reported when the api answers with a GraphQL errors payload or a body
// that does not decode.
var ErrUpstreamProtocol = errors.New("upstream api reported an error")

// Candidate is one raw product record pulled off a page, not yet validated.
type Candidate struct {
	Name      string
	PriceText string
}

// Batch is one page worth of candidates plus what the source knows about
// further pages.
type Batch struct {
	Page       int
	Candidates []Candidate
	// HasNext reports whether the source advertises another page.
	HasNext bool
}
