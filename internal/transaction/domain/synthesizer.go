package domain

import (
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	inventory "github.com/wyfcoding/ecomsynth/internal/inventory/domain"
	session "github.com/wyfcoding/ecomsynth/internal/session/domain"
	"github.com/wyfcoding/ecomsynth/pkg/idgen"
	"github.com/wyfcoding/ecomsynth/pkg/utils"
)

const (
	// maxStandaloneProducts bounds the product sample of one standalone
	// transaction.
	maxStandaloneProducts = 3
	maxStandaloneQuantity = 3
)

var (
	discountRates = []float64{0.05, 0.10, 0.15, 0.20}

	linkedPaymentMethods     = []string{"credit_card", "paypal", "apple_pay", "bank_transfer"}
	standalonePaymentMethods = []string{"credit_card", "paypal", "bank_transfer", "gift_card"}
	standaloneStatuses       = []string{StatusCompleted, StatusProcessing, StatusShipped, StatusDelivered}
)

type Synthesizer struct {
	rng      *rand.Rand
	ledger   *inventory.Ledger
	users    []*catalog.User
	products []*catalog.Product
	timespan time.Duration
	now      time.Time

	// discountProbability is configurable so discounting can be disabled
	// outright.
	discountProbability float64
}

func NewSynthesizer(rng *rand.Rand, ledger *inventory.Ledger, users []*catalog.User, products []*catalog.Product, timespanDays int, discountProbability float64) *Synthesizer {
	return &Synthesizer{
		rng:                 rng,
		ledger:              ledger,
		users:               users,
		products:            products,
		timespan:            time.Duration(timespanDays) * 24 * time.Hour,
		now:                 time.Now(),
		discountProbability: discountProbability,
	}
}

// FromSession derives the linked transaction of a converted session. The
// whole reservation is all-or-nothing: the first failed reserve releases
// everything reserved so far and nothing is emitted. The session keeps its
// converted status either way.
func (s *Synthesizer) FromSession(sess *session.Session) *Transaction {
	if sess.ConversionStatus != session.StatusConverted || len(sess.CartContents) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(sess.CartContents))
	for pid := range sess.CartContents {
		productIDs = append(productIDs, pid)
	}
	sort.Strings(productIDs)

	items := make([]Item, 0, len(productIDs))
	for _, pid := range productIDs {
		entry := sess.CartContents[pid]
		if !s.ledger.Reserve(pid, entry.Quantity) {
			for _, reserved := range items {
				s.ledger.Release(reserved.ProductID, reserved.Quantity)
			}
			return nil
		}
		items = append(items, newItem(pid, entry.Quantity, entry.Price))
	}

	txn := &Transaction{
		TransactionID: idgen.TransactionID(),
		SessionID:     &sess.SessionID,
		UserID:        sess.UserID,
		Timestamp:     sess.EndTime,
		Items:         items,
		PaymentMethod: utils.RandChoice(s.rng, linkedPaymentMethods),
		Status:        StatusCompleted,
	}
	s.price(txn)
	return txn
}

// Standalone draws a purchase not linked to any session: up to three
// distinct products, active ones only, each reserved independently. A failed
// reservation just omits that item; a transaction left with no items is
// discarded.
func (s *Synthesizer) Standalone() *Transaction {
	user := utils.RandChoice(s.rng, s.users)

	sampleSize := maxStandaloneProducts
	if len(s.products) < sampleSize {
		sampleSize = len(s.products)
	}
	perm := s.rng.Perm(len(s.products))[:sampleSize]

	items := make([]Item, 0, sampleSize)
	for _, idx := range perm {
		p := s.products[idx]
		if !p.IsActive {
			continue
		}
		qty := utils.RandInt(s.rng, 1, maxStandaloneQuantity)
		if s.ledger.Reserve(p.ProductID, qty) {
			items = append(items, newItem(p.ProductID, qty, p.BasePrice))
		}
	}

	if len(items) == 0 {
		return nil
	}

	txn := &Transaction{
		TransactionID: idgen.TransactionID(),
		UserID:        user.UserID,
		Timestamp:     utils.RandTimeBetween(s.rng, s.now.Add(-s.timespan), s.now),
		Items:         items,
		PaymentMethod: utils.RandChoice(s.rng, standalonePaymentMethods),
		Status:        utils.RandChoice(s.rng, standaloneStatuses),
	}
	s.price(txn)
	return txn
}

// price fills subtotal, discount and total, each rounded to 2 decimals.
func (s *Synthesizer) price(txn *Transaction) {
	subtotal := decimal.Zero
	for _, item := range txn.Items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Subtotal))
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if s.rng.Float64() < s.discountProbability {
		rate := decimal.NewFromFloat(utils.RandChoice(s.rng, discountRates))
		discount = subtotal.Mul(rate).Round(2)
	}

	txn.Subtotal = subtotal.InexactFloat64()
	txn.Discount = discount.InexactFloat64()
	txn.Total = subtotal.Sub(discount).Round(2).InexactFloat64()
}

func newItem(productID string, qty int, unitPrice float64) Item {
	subtotal := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2)
	return Item{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Subtotal:  subtotal.InexactFloat64(),
	}
}
