package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fermanzolido/autitos/internal/dto"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type DashboardService interface {
	// Stats returns the role-scoped counters. A non-nil concesionarioID
	// scopes stock and sales to that dealer and hides the network-wide
	// dealer count.
	Stats(ctx context.Context, concesionarioID *uuid.UUID) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	vehiculoRepo      repository.VehiculoRepository
	ventaRepo         repository.VentaRepository
	concesionarioRepo repository.ConcesionarioRepository
	rdb               *redis.Client
	cacheTTL          time.Duration
}

func NewDashboardService(
	vehiculoRepo repository.VehiculoRepository,
	ventaRepo repository.VentaRepository,
	concesionarioRepo repository.ConcesionarioRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		vehiculoRepo:      vehiculoRepo,
		ventaRepo:         ventaRepo,
		concesionarioRepo: concesionarioRepo,
		rdb:               rdb,
		cacheTTL:          cacheTTL,
	}
}

// Stats serves from a short-lived Redis cache keyed per scope. The
// counters tolerate staleness up to the TTL; a cache miss or Redis
// failure falls through to the database.
func (s *dashboardService) Stats(ctx context.Context, concesionarioID *uuid.UUID) (*dto.DashboardStatsResponse, error) {
	key := "stats:global"
	if concesionarioID != nil {
		key = "stats:concesionario:" + concesionarioID.String()
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.DashboardStatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	enStock, err := s.vehiculoRepo.CountEnStock(ctx, concesionarioID)
	if err != nil {
		return nil, errAlmacen("dashboard.stats", err)
	}
	ventas, err := s.ventaRepo.Count(ctx, concesionarioID)
	if err != nil {
		return nil, errAlmacen("dashboard.stats", err)
	}

	resp := &dto.DashboardStatsResponse{
		VehiculosEnStock: enStock,
		TotalVentas:      ventas,
	}
	if concesionarioID == nil {
		total, err := s.concesionarioRepo.Count(ctx)
		if err != nil {
			return nil, errAlmacen("dashboard.stats", err)
		}
		resp.TotalConcesionarios = &total
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("dashboard: failed to cache stats")
			}
		}
	}
	return resp, nil
}
