package fetcher

import (
	"context"
	"time"

	"macro-dashboard/internal/domain"
)

// Source is a raw upstream series provider. Errors wrap the domain absence
// reasons.
type Source interface {
	Name() string
	FetchLatest(ctx context.Context, id string) (*domain.Observation, error)
	FetchHistory(ctx context.Context, id string, start time.Time) (domain.Series, error)
}

// SentimentSource is a raw fear & greed provider.
type SentimentSource interface {
	Name() string
	FetchLatest(ctx context.Context) (*domain.SentimentReading, error)
}
