package domain

import (
	"math/rand"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	browsing "github.com/wyfcoding/ecomsynth/internal/browsing/domain"
	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	inventory "github.com/wyfcoding/ecomsynth/internal/inventory/domain"
	"github.com/wyfcoding/ecomsynth/pkg/idgen"
	"github.com/wyfcoding/ecomsynth/pkg/utils"
)

const (
	minDurationSeconds = 30
	maxDurationSeconds = 3600
	minPageViews       = 4
	maxPageViews       = 12

	// cartAddProbability gates a cart add on each product_detail view.
	cartAddProbability = 0.3
	// maxCartAdd caps a single add regardless of remaining stock.
	maxCartAdd = 3
	// conversionProbability applies once the cart and checkout
	// preconditions are both met.
	conversionProbability = 0.7
)

var (
	deviceTypes = []string{"mobile", "desktop", "tablet"}
	deviceOSes  = []string{"iOS", "Android", "Windows", "macOS"}
	browsers    = []string{"Chrome", "Safari", "Firefox", "Edge"}
	referrers   = []string{"direct", "email", "social", "search_engine", "affiliate"}
)

// Synthesizer builds full session records: timeline, cart state, conversion
// decision and geo/device metadata. The ledger is consulted for availability
// during cart adds but nothing is reserved until transaction time.
type Synthesizer struct {
	rng      *rand.Rand
	faker    *gofakeit.Faker
	users    []*catalog.User
	machine  *browsing.Machine
	resolver *browsing.ContentResolver
	ledger   *inventory.Ledger
	timespan time.Duration
	now      time.Time
}

func NewSynthesizer(rng *rand.Rand, users []*catalog.User, machine *browsing.Machine, resolver *browsing.ContentResolver, ledger *inventory.Ledger, timespanDays int) *Synthesizer {
	return &Synthesizer{
		rng:      rng,
		faker:    gofakeit.NewFaker(rng, false),
		users:    users,
		machine:  machine,
		resolver: resolver,
		ledger:   ledger,
		timespan: time.Duration(timespanDays) * 24 * time.Hour,
		now:      time.Now(),
	}
}

// Synthesize builds one session. The returned record is immutable from the
// caller's perspective.
func (s *Synthesizer) Synthesize() *Session {
	user := utils.RandChoice(s.rng, s.users)
	start := utils.RandTimeBetween(s.rng, s.now.Add(-s.timespan), s.now)
	duration := utils.RandInt(s.rng, minDurationSeconds, maxDurationSeconds)

	slots := s.timeSlots(duration)

	sess := &Session{
		SessionID:       idgen.SessionID(),
		UserID:          user.UserID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Second),
		DurationSeconds: duration,
		Geo: SessionGeo{
			City:      user.Geo.City,
			State:     user.Geo.State,
			Country:   user.Geo.Country,
			IPAddress: s.faker.IPv4Address(),
		},
		Device: DeviceProfile{
			Type:    utils.RandChoice(s.rng, deviceTypes),
			OS:      utils.RandChoice(s.rng, deviceOSes),
			Browser: utils.RandChoice(s.rng, browsers),
		},
		Referrer: utils.RandChoice(s.rng, referrers),
	}

	cart := map[string]*CartEntry{}
	viewed := map[string]struct{}{}

	for i := 0; i+1 < len(slots); i++ {
		var prior browsing.PageType
		if len(sess.PageViews) > 0 {
			prior = sess.PageViews[len(sess.PageViews)-1].PageType
		}
		pageType := s.machine.NextPage(i, prior)
		content := s.resolver.Resolve(pageType)

		var productID, categoryID *string
		if content.Product != nil {
			productID = ptr(content.Product.ProductID)
		}
		if content.CategoryID != "" {
			categoryID = ptr(content.CategoryID)
		}

		if pageType == browsing.PageProductDetail && content.Product != nil {
			pid := content.Product.ProductID
			if _, seen := viewed[pid]; !seen {
				viewed[pid] = struct{}{}
				sess.ViewedProducts = append(sess.ViewedProducts, pid)
			}
			if s.rng.Float64() < cartAddProbability {
				s.addToCart(cart, pid, content.Product.BasePrice)
			}
		}

		sess.PageViews = append(sess.PageViews, PageView{
			Timestamp:    start.Add(time.Duration(slots[i]) * time.Second),
			PageType:     pageType,
			ProductID:    productID,
			CategoryID:   categoryID,
			ViewDuration: slots[i+1] - slots[i],
		})
	}

	// The conversion gate counts any carted product, including entries
	// whose quantity never left zero; the emitted cart is filtered below.
	converted := false
	if len(cart) > 0 && sess.ReachedCheckout() {
		converted = s.rng.Float64() < conversionProbability
	}

	sess.CartContents = map[string]CartEntry{}
	for pid, entry := range cart {
		if entry.Quantity > 0 {
			sess.CartContents[pid] = *entry
		}
	}

	switch {
	case converted:
		sess.ConversionStatus = StatusConverted
	case len(cart) > 0:
		sess.ConversionStatus = StatusAbandoned
	default:
		sess.ConversionStatus = StatusBrowsed
	}

	return sess
}

// timeSlots draws the page-view boundary offsets: both endpoints plus 4-12
// random interior offsets, deduplicated and sorted. Colliding offsets yield
// fewer page views, never a zero-length one.
func (s *Synthesizer) timeSlots(duration int) []int {
	set := map[int]struct{}{0: {}, duration: {}}
	n := utils.RandInt(s.rng, minPageViews, maxPageViews)
	upper := duration - 1
	if upper < 2 {
		upper = 2
	}
	for i := 0; i < n; i++ {
		set[utils.RandInt(s.rng, 1, upper)] = struct{}{}
	}

	slots := make([]int, 0, len(set))
	for v := range set {
		slots = append(slots, v)
	}
	sort.Ints(slots)
	return slots
}

// addToCart caps the add at min(3, stock left beyond what the cart already
// holds). The entry price is frozen on first touch.
func (s *Synthesizer) addToCart(cart map[string]*CartEntry, productID string, price float64) {
	entry, ok := cart[productID]
	if !ok {
		entry = &CartEntry{Price: price}
		cart[productID] = entry
	}

	snapshot, ok := s.ledger.Peek(productID)
	if !ok {
		return
	}

	stockLeft := snapshot.CurrentStock - entry.Quantity
	maxPossible := maxCartAdd
	if stockLeft < maxPossible {
		maxPossible = stockLeft
	}
	if maxPossible > 0 {
		entry.Quantity += utils.RandInt(s.rng, 1, maxPossible)
	}
}

func ptr(s string) *string { return &s }
