// Package publisher streams generated records to Kafka for pipelines that
// consume the dataset as events rather than files.
package publisher

import (
	"context"

	session "github.com/wyfcoding/ecomsynth/internal/session/domain"
	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
	"github.com/wyfcoding/ecomsynth/pkg/logger"
	"github.com/wyfcoding/ecomsynth/pkg/mq"
)

const publishBatchSize = 500

type RecordPublisher struct {
	producer         *mq.KafkaProducer
	sessionTopic     string
	transactionTopic string
}

func NewRecordPublisher(producer *mq.KafkaProducer, sessionTopic, transactionTopic string) *RecordPublisher {
	return &RecordPublisher{
		producer:         producer,
		sessionTopic:     sessionTopic,
		transactionTopic: transactionTopic,
	}
}

// PublishSessions sends every session keyed by its session ID.
func (p *RecordPublisher) PublishSessions(ctx context.Context, sessions []*session.Session) error {
	for start := 0; start < len(sessions); start += publishBatchSize {
		end := start + publishBatchSize
		if end > len(sessions) {
			end = len(sessions)
		}
		batch := make(map[string]any, end-start)
		for _, s := range sessions[start:end] {
			batch[s.SessionID] = s
		}
		if err := p.producer.SendBatch(ctx, p.sessionTopic, batch); err != nil {
			return err
		}
	}
	logger.Info(ctx, "sessions published", "topic", p.sessionTopic, "count", len(sessions))
	return nil
}

// PublishTransactions sends every transaction keyed by its transaction ID.
func (p *RecordPublisher) PublishTransactions(ctx context.Context, transactions []*transaction.Transaction) error {
	for start := 0; start < len(transactions); start += publishBatchSize {
		end := start + publishBatchSize
		if end > len(transactions) {
			end = len(transactions)
		}
		batch := make(map[string]any, end-start)
		for _, t := range transactions[start:end] {
			batch[t.TransactionID] = t
		}
		if err := p.producer.SendBatch(ctx, p.transactionTopic, batch); err != nil {
			return err
		}
	}
	logger.Info(ctx, "transactions published", "topic", p.transactionTopic, "count", len(transactions))
	return nil
}
