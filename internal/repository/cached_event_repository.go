package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"calendar-be/internal/cache"
	"calendar-be/internal/entities"
)

type cachedEventRepository struct {
	EventRepository
	cache  cache.EventCache
	logger zerolog.Logger
}

// NewCachedEventRepository wraps repo with a read-through cache of each
// owner's event list. Cache failures are logged and never fail the call.
// A nil cache returns repo unchanged.
func NewCachedEventRepository(repo EventRepository, eventCache cache.EventCache, logger zerolog.Logger) EventRepository {
	if eventCache == nil {
		return repo
	}
	return &cachedEventRepository{
		EventRepository: repo,
		cache:           eventCache,
		logger:          logger.With().Str("component", "event_cache").Logger(),
	}
}

func (r *cachedEventRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Event, error) {
	// The generation is read before the store so a write that lands while
	// the store is queried keeps this result out of the cache.
	generation, genErr := r.cache.Generation(ctx, ownerID)
	if genErr != nil {
		r.logger.Warn().Err(genErr).Str("owner_id", ownerID.String()).Msg("cache generation read failed")
	}

	events, ok, err := r.cache.GetOwnerEvents(ctx, ownerID)
	if err != nil {
		r.logger.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("cache read failed")
	}
	if ok {
		return events, nil
	}

	events, err = r.EventRepository.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return events, nil
	}
	if err := r.cache.SetOwnerEvents(ctx, ownerID, generation, events); err != nil {
		r.logger.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("cache write failed")
	}
	return events, nil
}

func (r *cachedEventRepository) Create(ctx context.Context, event *entities.Event) error {
	if err := r.EventRepository.Create(ctx, event); err != nil {
		return err
	}
	r.invalidate(ctx, event.OwnerID)
	return nil
}

func (r *cachedEventRepository) Update(ctx context.Context, event *entities.Event) error {
	if err := r.EventRepository.Update(ctx, event); err != nil {
		return err
	}
	r.invalidate(ctx, event.OwnerID)
	return nil
}

func (r *cachedEventRepository) Delete(ctx context.Context, event *entities.Event) error {
	if err := r.EventRepository.Delete(ctx, event); err != nil {
		return err
	}
	r.invalidate(ctx, event.OwnerID)
	return nil
}

func (r *cachedEventRepository) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := r.cache.InvalidateOwner(ctx, ownerID); err != nil {
		r.logger.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("cache invalidation failed")
	}
}
