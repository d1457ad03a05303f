package stats

import (
	"context"
	"time"

	"github.com/gangbro/missionboard/internal/cache"
	"github.com/gangbro/missionboard/internal/model"
)

const key = "system"

type Source interface {
	Stats(ctx context.Context) (*model.SystemStats, error)
}

// Service serves board statistics from a short-lived cache.
type Service struct {
	cache *cache.Cache[string, *model.SystemStats]
}

func NewService(src Source, ttl time.Duration) *Service {
	return &Service{
		cache: cache.NewWithTTL[string, *model.SystemStats](ttl, func(string) (*model.SystemStats, error) {
			return src.Stats(context.Background())
		}),
	}
}

func (s *Service) Get() (*model.SystemStats, error) {
	return s.cache.Load(key)
}

func (s *Service) Invalidate() {
	s.cache.Invalidate(key)
}
