// Package domain implements the browsing-flow state machine: a first-order
// Markov chain over page types driving page-view simulation.
package domain

import "math/rand"

// PageType identifies one simulated page in a browsing session.
type PageType string

const (
	PageHome            PageType = "home"
	PageSearch          PageType = "search"
	PageCategoryListing PageType = "category_listing"
	PageProductDetail   PageType = "product_detail"
	PageCart            PageType = "cart"
	PageCheckout        PageType = "checkout"
	PageConfirmation    PageType = "confirmation"
)

type transition struct {
	page   PageType
	weight float64
}

// entryPages are the uniform choices for the first page of a session.
var entryPages = []PageType{PageHome, PageSearch, PageCategoryListing}

// transitions is the fixed weight table keyed by the previous page. Each
// row sums to 1.0.
var transitions = map[PageType][]transition{
	PageHome: {
		{PageCategoryListing, 0.5},
		{PageSearch, 0.3},
		{PageProductDetail, 0.2},
	},
	PageCategoryListing: {
		{PageProductDetail, 0.7},
		{PageCategoryListing, 0.1},
		{PageSearch, 0.1},
		{PageHome, 0.1},
	},
	PageSearch: {
		{PageProductDetail, 0.6},
		{PageSearch, 0.2},
		{PageCategoryListing, 0.1},
		{PageHome, 0.1},
	},
	PageProductDetail: {
		{PageProductDetail, 0.3},
		{PageCart, 0.3},
		{PageCategoryListing, 0.2},
		{PageSearch, 0.1},
		{PageHome, 0.1},
	},
	PageCart: {
		{PageCheckout, 0.6},
		{PageProductDetail, 0.2},
		{PageCategoryListing, 0.1},
		{PageHome, 0.1},
	},
	PageCheckout: {
		{PageConfirmation, 0.8},
		{PageCart, 0.1},
		{PageHome, 0.1},
	},
	PageConfirmation: {
		{PageHome, 0.6},
		{PageProductDetail, 0.2},
		{PageCategoryListing, 0.2},
	},
}

// Machine draws the next page type from the weight table. It is memoryless
// beyond the immediately preceding page and shares no state across sessions.
type Machine struct {
	rng *rand.Rand
}

func NewMachine(rng *rand.Rand) *Machine {
	return &Machine{rng: rng}
}

// NextPage yields the page type for the given position. Position 0 picks
// uniformly among the entry pages; an unknown prior falls back to home's
// distribution.
func (m *Machine) NextPage(position int, prior PageType) PageType {
	if position == 0 {
		return entryPages[m.rng.Intn(len(entryPages))]
	}

	row, ok := transitions[prior]
	if !ok {
		row = transitions[PageHome]
	}
	return weightedChoice(m.rng, row)
}

func weightedChoice(rng *rand.Rand, row []transition) PageType {
	r := rng.Float64()
	acc := 0.0
	for _, t := range row {
		acc += t.weight
		if r < acc {
			return t.page
		}
	}
	// Guard against float drift; the last entry absorbs the remainder.
	return row[len(row)-1].page
}
