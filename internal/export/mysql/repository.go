// Package mysql loads the generated dataset into MySQL through GORM, an
// optional sink for pipelines that query relationally instead of reading
// the JSON exports.
package mysql

import (
	"context"
	"fmt"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
	"github.com/wyfcoding/ecomsynth/pkg/db"
)

type DatasetRepository struct {
	db        *db.DB
	batchSize int
}

func NewDatasetRepository(database *db.DB, batchSize int) *DatasetRepository {
	return &DatasetRepository{db: database, batchSize: batchSize}
}

// Migrate creates the dataset tables.
func (r *DatasetRepository) Migrate() error {
	return r.db.AutoMigrate(
		&UserModel{},
		&ProductModel{},
		&CategoryModel{},
		&TransactionModel{},
		&TransactionItemModel{},
	)
}

func (r *DatasetRepository) SaveUsers(ctx context.Context, users []*catalog.User) error {
	models := make([]*UserModel, 0, len(users))
	for _, u := range users {
		models = append(models, toUserModel(u))
	}
	if err := r.db.BatchInsert(ctx, models, r.batchSize); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *DatasetRepository) SaveProducts(ctx context.Context, products []*catalog.Product) error {
	models := make([]*ProductModel, 0, len(products))
	for _, p := range products {
		models = append(models, toProductModel(p))
	}
	if err := r.db.BatchInsert(ctx, models, r.batchSize); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

func (r *DatasetRepository) SaveCategories(ctx context.Context, categories []*catalog.Category) error {
	models := make([]*CategoryModel, 0, len(categories))
	for _, c := range categories {
		models = append(models, toCategoryModel(c))
	}
	if err := r.db.BatchInsert(ctx, models, r.batchSize); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// SaveTransactions persists transactions together with their items.
func (r *DatasetRepository) SaveTransactions(ctx context.Context, transactions []*transaction.Transaction) error {
	models := make([]*TransactionModel, 0, len(transactions))
	for _, t := range transactions {
		models = append(models, toTransactionModel(t))
	}
	if err := r.db.BatchInsert(ctx, models, r.batchSize); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}
