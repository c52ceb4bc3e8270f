package domain

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
)

func newTestLedger(stocks map[string]int) *Ledger {
	products := make([]*catalog.Product, 0, len(stocks))
	for id, stock := range stocks {
		products = append(products, &catalog.Product{
			ProductID:    id,
			CategoryID:   "cat_000",
			BasePrice:    9.99,
			CurrentStock: stock,
			IsActive:     true,
		})
	}
	return NewLedger(products)
}

func TestReserve_DecrementsStock(t *testing.T) {
	l := newTestLedger(map[string]int{"prod_00001": 10})

	require.True(t, l.Reserve("prod_00001", 3))

	p, ok := l.Peek("prod_00001")
	require.True(t, ok)
	assert.Equal(t, 7, p.CurrentStock)
}

func TestReserve_InsufficientStock(t *testing.T) {
	l := newTestLedger(map[string]int{"prod_00001": 2})

	assert.False(t, l.Reserve("prod_00001", 3))

	p, _ := l.Peek("prod_00001")
	assert.Equal(t, 2, p.CurrentStock, "failed reserve must not mutate stock")
}

func TestReserve_UnknownProduct(t *testing.T) {
	l := newTestLedger(map[string]int{"prod_00001": 2})
	assert.False(t, l.Reserve("prod_99999", 1))
}

func TestReserve_ConcurrentContention(t *testing.T) {
	// One product with stock 2, two concurrent attempts for quantity 2:
	// exactly one may win and stock must end at zero.
	l := newTestLedger(map[string]int{"prod_00001": 2})

	var wg sync.WaitGroup
	var successes atomic.Int32
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Reserve("prod_00001", 2) {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	p, _ := l.Peek("prod_00001")
	assert.Equal(t, 0, p.CurrentStock)
}

func TestReserve_StockNeverNegativeUnderLoad(t *testing.T) {
	const initial = 500
	l := newTestLedger(map[string]int{"prod_00001": initial})

	var wg sync.WaitGroup
	var sold atomic.Int64
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(qty int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if l.Reserve("prod_00001", qty) {
					sold.Add(int64(qty))
				}
				p, ok := l.Peek("prod_00001")
				if ok && p.CurrentStock < 0 {
					t.Error("stock went negative")
					return
				}
			}
		}(g%3 + 1)
	}
	wg.Wait()

	p, _ := l.Peek("prod_00001")
	assert.GreaterOrEqual(t, p.CurrentStock, 0)
	assert.Equal(t, initial, p.CurrentStock+int(sold.Load()), "no stock created or destroyed outside the ledger")
}

func TestRelease_RestoresStock(t *testing.T) {
	l := newTestLedger(map[string]int{"prod_00001": 5})

	require.True(t, l.Reserve("prod_00001", 4))
	l.Release("prod_00001", 4)

	p, _ := l.Peek("prod_00001")
	assert.Equal(t, 5, p.CurrentStock)
}

func TestPeek_ReturnsSnapshot(t *testing.T) {
	l := newTestLedger(map[string]int{"prod_00001": 5})

	p, ok := l.Peek("prod_00001")
	require.True(t, ok)
	p.CurrentStock = 0

	again, _ := l.Peek("prod_00001")
	assert.Equal(t, 5, again.CurrentStock, "mutating a snapshot must not touch the ledger")
}

func TestProducts_SortedSnapshot(t *testing.T) {
	l := newTestLedger(map[string]int{"prod_00002": 1, "prod_00001": 2, "prod_00003": 3})

	products := l.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "prod_00001", products[0].ProductID)
	assert.Equal(t, "prod_00002", products[1].ProductID)
	assert.Equal(t, "prod_00003", products[2].ProductID)
	assert.Equal(t, 6, l.TotalStock())
}
