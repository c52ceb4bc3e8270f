// Package domain counts product co-occurrence across transactions, the
// aggregation that downstream affinity reports are built from.
package domain

import (
	"sort"

	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
)

// PairCount is one unordered product pair and how many transactions
// contained both.
type PairCount struct {
	Pair      [2]string `json:"pair"`
	Frequency int       `json:"frequency"`
}

// CoOccurrences returns every product pair that appears together in at
// least one transaction, ordered by descending frequency (ties by pair).
// Duplicate products within a transaction count once.
func CoOccurrences(transactions []*transaction.Transaction) []PairCount {
	counts := map[[2]string]int{}

	for _, txn := range transactions {
		seen := map[string]struct{}{}
		for _, item := range txn.Items {
			seen[item.ProductID] = struct{}{}
		}
		if len(seen) < 2 {
			continue
		}

		products := make([]string, 0, len(seen))
		for pid := range seen {
			products = append(products, pid)
		}
		sort.Strings(products)

		for i := 0; i < len(products); i++ {
			for j := i + 1; j < len(products); j++ {
				counts[[2]string{products[i], products[j]}]++
			}
		}
	}

	out := make([]PairCount, 0, len(counts))
	for pair, freq := range counts {
		out = append(out, PairCount{Pair: pair, Frequency: freq})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		if out[i].Pair[0] != out[j].Pair[0] {
			return out[i].Pair[0] < out[j].Pair[0]
		}
		return out[i].Pair[1] < out[j].Pair[1]
	})
	return out
}
