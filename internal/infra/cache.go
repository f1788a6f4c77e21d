package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Nikise23/optica-mia/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	reporteDiarioTTL = 60 * time.Second
	reporteKeyPrefix = "reporte:dia:"
)

// ReporteCache is a read-through Redis cache for the daily report. A nil
// receiver (or nil client) degrades to a no-op so services and unit tests can
// run without Redis.
type ReporteCache struct {
	rdb *redis.Client
}

func NewReporteCache(rdb *redis.Client) *ReporteCache {
	return &ReporteCache{rdb: rdb}
}

func (c *ReporteCache) ObtenerDiario(ctx context.Context, fecha time.Time) (*dto.ReporteDiarioResponse, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, reporteKey(fecha)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.ReporteDiarioResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *ReporteCache) GuardarDiario(ctx context.Context, fecha time.Time, resp *dto.ReporteDiarioResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, reporteKey(fecha), raw, reporteDiarioTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: no se pudo guardar el reporte diario")
	}
}

// InvalidarDiario drops the cached report after any pago/gasto/caja mutation
// touching the date.
func (c *ReporteCache) InvalidarDiario(ctx context.Context, fecha time.Time) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, reporteKey(fecha)).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: no se pudo invalidar el reporte diario")
	}
}

func reporteKey(fecha time.Time) string {
	return reporteKeyPrefix + fecha.Format("2006-01-02")
}
