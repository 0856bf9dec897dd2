package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/referral-portal/internal/lib/sl"
	"github.com/magabrotheeeer/referral-portal/internal/metrics"
	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// SummarySource источник сводок, обычно клиент удалённого сервиса.
type SummarySource interface {
	Summary(ctx context.Context, filter models.SummaryFilter) ([]models.StaffCount, error)
}

// Summaries кэширует ответы SummarySource по фильтру. Ошибки источника
// не кэшируются. Недоступный redis не ломает запрос, сводка берётся
// из источника напрямую.
type Summaries struct {
	log    *slog.Logger
	source SummarySource
	cache  *Cache
	ttl    time.Duration
}

func NewSummaries(log *slog.Logger, source SummarySource, cache *Cache, ttl time.Duration) *Summaries {
	return &Summaries{log: log, source: source, cache: cache, ttl: ttl}
}

// SummaryKey ключ redis для фильтра. Пустой фильтр тоже отдельный ключ.
func SummaryKey(filter models.SummaryFilter) string {
	return "summary:" + filter.Values().Encode()
}

func (s *Summaries) Summary(ctx context.Context, filter models.SummaryFilter) ([]models.StaffCount, error) {
	const op = "cache.Summaries.Summary"
	log := s.log.With(sl.Op(op))
	key := SummaryKey(filter)

	var rows []models.StaffCount
	found, err := s.cache.Get(ctx, key, &rows)
	if err != nil {
		log.Warn("summary cache read failed", sl.Err(err))
	}
	metrics.CacheLookup(found)
	if found {
		return rows, nil
	}

	rows, err = s.source.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, rows, s.ttl); err != nil {
		log.Warn("summary cache write failed", sl.Err(err))
	}
	return rows, nil
}
