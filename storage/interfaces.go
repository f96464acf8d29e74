package storage

import "cafe-scraper/models"

// RecordWriter is the interface any output backend must satisfy.
type RecordWriter interface {
	Append(record *models.CafeRecord) error
	Close() error
}
