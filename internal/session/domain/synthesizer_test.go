package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	browsing "github.com/wyfcoding/ecomsynth/internal/browsing/domain"
	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	inventory "github.com/wyfcoding/ecomsynth/internal/inventory/domain"
)

type fixture struct {
	synth  *Synthesizer
	ledger *inventory.Ledger
}

func newFixture(seed int64, stock int) *fixture {
	rng := rand.New(rand.NewSource(seed))

	categories := []*catalog.Category{
		{CategoryID: "cat_001", Name: "Electronics"},
		{CategoryID: "cat_002", Name: "Books"},
	}
	products := make([]*catalog.Product, 0, 6)
	for i := 1; i <= 6; i++ {
		products = append(products, &catalog.Product{
			ProductID:    fmt.Sprintf("prod_%05d", i),
			CategoryID:   categories[i%2].CategoryID,
			BasePrice:    float64(i) * 10,
			CurrentStock: stock,
			IsActive:     true,
		})
	}
	users := []*catalog.User{
		{UserID: "user_000001", Geo: catalog.GeoData{City: "Springfield", State: "IL", Country: "US"}},
		{UserID: "user_000002", Geo: catalog.GeoData{City: "Riverton", State: "CA", Country: "US"}},
	}

	ledger := inventory.NewLedger(products)
	machine := browsing.NewMachine(rng)
	resolver := browsing.NewContentResolver(rng, products, categories, ledger)
	return &fixture{
		synth:  NewSynthesizer(rng, users, machine, resolver, ledger, 90),
		ledger: ledger,
	}
}

func TestSynthesize_TimelineInvariants(t *testing.T) {
	f := newFixture(42, 100)

	for i := 0; i < 200; i++ {
		sess := f.synth.Synthesize()

		require.NotEmpty(t, sess.SessionID)
		assert.Regexp(t, `^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`, sess.Geo.IPAddress)
		assert.GreaterOrEqual(t, sess.DurationSeconds, 30)
		assert.LessOrEqual(t, sess.DurationSeconds, 3600)
		assert.Equal(t, sess.StartTime.Add(time.Duration(sess.DurationSeconds)*time.Second), sess.EndTime)
		require.NotEmpty(t, sess.PageViews)

		total := 0
		for j, pv := range sess.PageViews {
			assert.Positive(t, pv.ViewDuration, "no zero-length page views")
			total += pv.ViewDuration
			if j > 0 {
				assert.False(t, pv.Timestamp.Before(sess.PageViews[j-1].Timestamp), "timestamps must be non-decreasing")
			}
			assert.False(t, pv.Timestamp.Before(sess.StartTime))
			assert.False(t, pv.Timestamp.After(sess.EndTime))
		}
		assert.Equal(t, sess.DurationSeconds, total, "view durations must sum to the session duration")
	}
}

func TestSynthesize_ConversionPreconditions(t *testing.T) {
	f := newFixture(7, 100)

	statuses := map[string]int{}
	for i := 0; i < 500; i++ {
		sess := f.synth.Synthesize()
		statuses[sess.ConversionStatus]++

		switch sess.ConversionStatus {
		case StatusConverted:
			assert.True(t, sess.ReachedCheckout(), "converted session must have reached checkout")
		case StatusBrowsed:
			assert.Empty(t, sess.CartContents)
		case StatusAbandoned:
		default:
			t.Fatalf("unknown conversion status %q", sess.ConversionStatus)
		}

		for pid, entry := range sess.CartContents {
			assert.Positive(t, entry.Quantity, "emitted cart entries must have positive quantity")
			assert.Positive(t, entry.Price)
			assert.Contains(t, sess.ViewedProducts, pid, "carted products must have been viewed")
		}
	}

	assert.Positive(t, statuses[StatusBrowsed], "a 500-session run should include browsed sessions")
	assert.Positive(t, statuses[StatusConverted], "a 500-session run should include conversions")
}

func TestSynthesize_DoesNotMutateLedger(t *testing.T) {
	f := newFixture(11, 50)
	before := f.ledger.TotalStock()

	for i := 0; i < 100; i++ {
		f.synth.Synthesize()
	}

	assert.Equal(t, before, f.ledger.TotalStock(), "browsing must never reserve stock")
}

func TestAddToCart_CappedByRemainingStock(t *testing.T) {
	f := newFixture(3, 2)

	cart := map[string]*CartEntry{}
	for i := 0; i < 50; i++ {
		f.synth.addToCart(cart, "prod_00001", 10.0)
	}

	entry := cart["prod_00001"]
	require.NotNil(t, entry)
	assert.LessOrEqual(t, entry.Quantity, 2, "cart must not exceed available stock")
	assert.Equal(t, 10.0, entry.Price)
}

func TestAddToCart_PriceFrozenOnFirstAdd(t *testing.T) {
	f := newFixture(5, 100)

	cart := map[string]*CartEntry{}
	f.synth.addToCart(cart, "prod_00001", 19.99)
	f.synth.addToCart(cart, "prod_00001", 99.99)

	assert.Equal(t, 19.99, cart["prod_00001"].Price, "price is frozen at the first add")
}

func TestAddToCart_UnknownProductIgnored(t *testing.T) {
	f := newFixture(9, 100)

	cart := map[string]*CartEntry{}
	f.synth.addToCart(cart, "prod_99999", 5.0)

	assert.Zero(t, cart["prod_99999"].Quantity)
}

func TestTimeSlots_Bounded(t *testing.T) {
	f := newFixture(13, 100)

	for i := 0; i < 200; i++ {
		slots := f.synth.timeSlots(120)
		require.GreaterOrEqual(t, len(slots), 2)
		assert.LessOrEqual(t, len(slots), 14)
		assert.Equal(t, 0, slots[0])
		assert.Equal(t, 120, slots[len(slots)-1])
		for j := 1; j < len(slots); j++ {
			assert.Greater(t, slots[j], slots[j-1], "slots must be strictly increasing")
		}
	}
}

func TestTimeSlots_TinyDuration(t *testing.T) {
	f := newFixture(17, 100)

	slots := f.synth.timeSlots(30)
	assert.Equal(t, 0, slots[0])
	assert.Equal(t, 30, slots[len(slots)-1])
}
