// Package jsonfile serializes the generated dataset to JSON files: one
// array per record stream, with sessions chunked into fixed-size batches.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	session "github.com/wyfcoding/ecomsynth/internal/session/domain"
	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
)

type Writer struct {
	dir       string
	chunkSize int
}

func NewWriter(dir string, chunkSize int) *Writer {
	return &Writer{dir: dir, chunkSize: chunkSize}
}

func (w *Writer) WriteUsers(users []*catalog.User) error {
	return w.writeJSON("users.json", users)
}

// WriteProducts persists the post-generation stock snapshot.
func (w *Writer) WriteProducts(products []*catalog.Product) error {
	return w.writeJSON("products.json", products)
}

func (w *Writer) WriteCategories(categories []*catalog.Category) error {
	return w.writeJSON("categories.json", categories)
}

func (w *Writer) WriteTransactions(transactions []*transaction.Transaction) error {
	return w.writeJSON("transactions.json", transactions)
}

// WriteSessions chunks sessions into sessions_<n>.json files and returns
// the number of files written.
func (w *Writer) WriteSessions(sessions []*session.Session) (int, error) {
	files := 0
	for i := 0; i < len(sessions); i += w.chunkSize {
		end := i + w.chunkSize
		if end > len(sessions) {
			end = len(sessions)
		}
		name := fmt.Sprintf("sessions_%d.json", i/w.chunkSize)
		if err := w.writeJSON(name, sessions[i:end]); err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

func (w *Writer) writeJSON(name string, v any) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
