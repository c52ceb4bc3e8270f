// Package domain holds the inventory ledger, the single gateway for stock
// mutation during dataset generation.
package domain

import (
	"sort"
	"sync"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
)

// Ledger wraps the frozen catalog with mutual exclusion so that every
// check-then-decrement is one atomic critical section. Stock can never go
// negative, no matter how many producers call Reserve concurrently.
type Ledger struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
}

// NewLedger takes ownership of the product records; callers must not mutate
// stock through the slice afterwards.
func NewLedger(products []*catalog.Product) *Ledger {
	m := make(map[string]*catalog.Product, len(products))
	for _, p := range products {
		m[p.ProductID] = p
	}
	return &Ledger{products: m}
}

// Reserve decrements stock by qty and reports success. It fails, without
// mutating anything, when the product is unknown or stock is insufficient.
// Insufficient stock is an expected outcome, not an error.
func (l *Ledger) Reserve(productID string, qty int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.products[productID]
	if !ok {
		return false
	}
	if p.CurrentStock < qty {
		return false
	}
	p.CurrentStock -= qty
	return true
}

// Release returns previously reserved stock, used to roll back a linked
// transaction whose later reservation failed.
func (l *Ledger) Release(productID string, qty int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.products[productID]; ok {
		p.CurrentStock += qty
	}
}

// Peek returns a consistent value snapshot of the product without reserving.
func (l *Ledger) Peek(productID string) (catalog.Product, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.products[productID]
	if !ok {
		return catalog.Product{}, false
	}
	return *p, true
}

// Products returns the post-generation catalog snapshot in product-ID order.
func (l *Ledger) Products() []*catalog.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*catalog.Product, 0, len(l.products))
	for _, p := range l.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// TotalStock sums the remaining stock across the catalog.
func (l *Ledger) TotalStock() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, p := range l.products {
		total += p.CurrentStock
	}
	return total
}
