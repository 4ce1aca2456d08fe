package history

import (
	"context"
	"fmt"

	"dashmate/app/config"

	"github.com/samber/do"
	"golang.org/x/sync/singleflight"
)

// MemoryFetcher is the slice of the backend client this service needs.
type MemoryFetcher interface {
	Memory(ctx context.Context, userID string) ([]Interaction, error)
}

type Service struct {
	cfg     *config.Config
	fetcher MemoryFetcher

	group singleflight.Group
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:     do.MustInvoke[*config.Config](di),
		fetcher: do.MustInvoke[MemoryFetcher](di),
	}, nil
}

// Load fetches the persisted interaction log and rebuilds the session
// list. Concurrent loads for the same user are collapsed into a single
// backend call. A session-expiry error from the fetch is propagated
// unchanged so the caller can force a logout.
func (s *Service) Load(ctx context.Context, userID string) ([]Session, error) {
	result, err, _ := s.group.Do(userID, func() (any, error) {
		interactions, err := s.fetcher.Memory(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch interaction history: %w", err)
		}

		return Reconstruct(interactions), nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]Session), nil
}
