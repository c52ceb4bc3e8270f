package domain

import (
	"math/rand"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	inventory "github.com/wyfcoding/ecomsynth/internal/inventory/domain"
)

// maxProductDraws bounds the search for a sellable product before the
// resolver falls back to an unrestricted pick, so a page can still render
// under catalog exhaustion.
const maxProductDraws = 10

// PageContent is the product/category pair rendered on a page; both are
// empty for pages that carry no content.
type PageContent struct {
	Product    *catalog.Product
	CategoryID string
}

// ContentResolver picks the product or category shown on a page. Stock is
// read through the ledger so draws observe live inventory.
type ContentResolver struct {
	rng        *rand.Rand
	products   []*catalog.Product
	categories []*catalog.Category
	ledger     *inventory.Ledger
}

func NewContentResolver(rng *rand.Rand, products []*catalog.Product, categories []*catalog.Category, ledger *inventory.Ledger) *ContentResolver {
	return &ContentResolver{
		rng:        rng,
		products:   products,
		categories: categories,
		ledger:     ledger,
	}
}

// Resolve returns the content for a page type. Product pages bias strongly
// toward active, in-stock products; category pages pick a uniform category.
func (r *ContentResolver) Resolve(pageType PageType) PageContent {
	switch pageType {
	case PageProductDetail:
		for i := 0; i < maxProductDraws; i++ {
			p := r.products[r.rng.Intn(len(r.products))]
			snapshot, ok := r.ledger.Peek(p.ProductID)
			if ok && snapshot.IsActive && snapshot.CurrentStock > 0 {
				return PageContent{Product: &snapshot, CategoryID: snapshot.CategoryID}
			}
		}
		p := r.products[r.rng.Intn(len(r.products))]
		snapshot, ok := r.ledger.Peek(p.ProductID)
		if !ok {
			snapshot = *p
		}
		return PageContent{Product: &snapshot, CategoryID: snapshot.CategoryID}
	case PageCategoryListing:
		c := r.categories[r.rng.Intn(len(r.categories))]
		return PageContent{CategoryID: c.CategoryID}
	default:
		return PageContent{}
	}
}
