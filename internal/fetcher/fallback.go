package fetcher

import (
	"context"
	"errors"
	"time"

	"macro-dashboard/internal/domain"
)

// Fallback tries each source in order and returns the first success. If all
// fail, the first failure that is not a missing credential is reported.
type Fallback struct {
	sources []Source
}

func NewFallback(sources ...Source) *Fallback {
	return &Fallback{sources: sources}
}

func (f *Fallback) Name() string {
	if len(f.sources) == 0 {
		return "fallback"
	}
	return f.sources[0].Name()
}

func (f *Fallback) FetchLatest(ctx context.Context, id string) (*domain.Observation, error) {
	var errs []error
	for _, src := range f.sources {
		obs, err := src.FetchLatest(ctx, id)
		if err == nil {
			return obs, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, pickError(errs)
}

func (f *Fallback) FetchHistory(ctx context.Context, id string, start time.Time) (domain.Series, error) {
	var errs []error
	for _, src := range f.sources {
		series, err := src.FetchHistory(ctx, id, start)
		if err == nil {
			return series, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return domain.Series{ID: id}, pickError(errs)
}

func pickError(errs []error) error {
	if len(errs) == 0 {
		return domain.ErrNoData
	}
	for _, err := range errs {
		if !errors.Is(err, domain.ErrMissingCredential) {
			return err
		}
	}
	return errs[0]
}
