// Package storage persists support-record catalogs.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// ErrRecordNotFound is returned when no stored record has the requested ID.
var ErrRecordNotFound = errors.New("record not found")

// Store defines catalog persistence operations.
type Store interface {
	// ReplaceAll swaps the stored catalog for records, keeping their order.
	ReplaceAll(ctx context.Context, records []*models.SupportRecord) error
	ListRecords(ctx context.Context) ([]*models.SupportRecord, error)
	GetRecord(ctx context.Context, id string) (*models.SupportRecord, error)
	CountRecords(ctx context.Context) (int64, error)

	Close() error
}
