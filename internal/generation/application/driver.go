// Package application drives session/transaction production: a bounded
// iterative loop that alternates the two synthesizers until both target
// counts are met or the iteration ceiling trips.
package application

import (
	"context"
	"math/rand"

	session "github.com/wyfcoding/ecomsynth/internal/session/domain"
	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
	"github.com/wyfcoding/ecomsynth/pkg/logger"
)

// ceilingFactor bounds the loop at factor x (sessions target + transactions
// target) iterations, the fail-safe against non-termination once stock
// exhaustion makes valid transactions statistically rare.
const ceilingFactor = 3

const progressInterval = 10000

type Config struct {
	TargetSessions        int
	TargetTransactions    int
	StandaloneProbability float64
}

// Result is the explicit outcome of a run. A short-fall after a ceiling
// breach is an accepted outcome, not an error.
type Result struct {
	Sessions     []*session.Session
	Transactions []*transaction.Transaction
	Iterations   int

	TargetSessions     int
	TargetTransactions int
}

// SessionShortfall reports how many sessions short of the target the run
// ended, zero when the target was met.
func (r *Result) SessionShortfall() int {
	if n := r.TargetSessions - len(r.Sessions); n > 0 {
		return n
	}
	return 0
}

func (r *Result) TransactionShortfall() int {
	if n := r.TargetTransactions - len(r.Transactions); n > 0 {
		return n
	}
	return 0
}

// Converged reports whether both targets were met before the ceiling.
func (r *Result) Converged() bool {
	return r.SessionShortfall() == 0 && r.TransactionShortfall() == 0
}

// Driver runs the generation loop. It is logically sequential; the ledger
// underneath stays safe for concurrent producers regardless.
type Driver struct {
	rng          *rand.Rand
	sessions     *session.Synthesizer
	transactions *transaction.Synthesizer
	cfg          Config
}

func NewDriver(rng *rand.Rand, sessions *session.Synthesizer, transactions *transaction.Synthesizer, cfg Config) *Driver {
	return &Driver{
		rng:          rng,
		sessions:     sessions,
		transactions: transactions,
		cfg:          cfg,
	}
}

// Run produces sessions and transactions until both targets are met, the
// iteration ceiling is hit, or ctx is cancelled. Whatever was produced so
// far is always returned.
func (d *Driver) Run(ctx context.Context) *Result {
	res := &Result{
		TargetSessions:     d.cfg.TargetSessions,
		TargetTransactions: d.cfg.TargetTransactions,
	}
	maxIterations := ceilingFactor * (d.cfg.TargetSessions + d.cfg.TargetTransactions)

	for (len(res.Sessions) < d.cfg.TargetSessions || len(res.Transactions) < d.cfg.TargetTransactions) &&
		res.Iterations < maxIterations {
		if ctx.Err() != nil {
			logger.Warn(ctx, "generation cancelled",
				"iterations", res.Iterations,
				"sessions", len(res.Sessions),
				"transactions", len(res.Transactions),
			)
			break
		}
		res.Iterations++

		if len(res.Sessions) < d.cfg.TargetSessions {
			sess := d.sessions.Synthesize()
			res.Sessions = append(res.Sessions, sess)

			if sess.ConversionStatus == session.StatusConverted && len(res.Transactions) < d.cfg.TargetTransactions {
				if txn := d.transactions.FromSession(sess); txn != nil {
					res.Transactions = append(res.Transactions, txn)
				}
			}
		}

		// Some purchases are not linked to any simulated browsing.
		if len(res.Transactions) < d.cfg.TargetTransactions && d.rng.Float64() < d.cfg.StandaloneProbability {
			if txn := d.transactions.Standalone(); txn != nil {
				res.Transactions = append(res.Transactions, txn)
			}
		}

		if res.Iterations%progressInterval == 0 {
			logger.Info(ctx, "generation progress",
				"sessions", len(res.Sessions),
				"target_sessions", d.cfg.TargetSessions,
				"transactions", len(res.Transactions),
				"target_transactions", d.cfg.TargetTransactions,
				"iteration", res.Iterations,
			)
		}
	}

	if !res.Converged() {
		logger.Warn(ctx, "generation stopped short of targets",
			"iterations", res.Iterations,
			"session_shortfall", res.SessionShortfall(),
			"transaction_shortfall", res.TransactionShortfall(),
		)
	}

	return res
}
