package usecase

import (
	"context"
	"fmt"

	"ticket-office/internal/data/repository"
	"ticket-office/internal/dto/response"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

// MaxFreeNumbers caps the free-numbers listing regardless of the
// requested limit.
const MaxFreeNumbers = 50

type PoolService interface {
	GetSummary(ctx context.Context) (*response.PoolSummaryResponse, error)
	GetFreeNumbers(ctx context.Context, limit int) (*response.FreeNumbersResponse, error)

	// Reset wipes the ledger and reseeds every number back to free. It is
	// the only path that re-seeds a non-empty pool.
	Reset(ctx context.Context) error
}

type poolService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewPoolService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PoolService {
	return &poolService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "pool")),
	}
}

func (s *poolService) GetSummary(ctx context.Context) (*response.PoolSummaryResponse, error) {
	summary, err := s.repo.Pool.Summary(ctx)
	if err != nil {
		s.log.Error("Failed to get pool summary", zap.Error(err))
		return nil, fmt.Errorf("get pool summary: %w", err)
	}

	return &response.PoolSummaryResponse{
		Total: summary.Total,
		Free:  summary.Free,
		Used:  summary.Used,
	}, nil
}

func (s *poolService) GetFreeNumbers(ctx context.Context, limit int) (*response.FreeNumbersResponse, error) {
	limit = utils.ClampInt(limit, MaxFreeNumbers)

	numbers, err := s.repo.Pool.ListFree(ctx, limit)
	if err != nil {
		s.log.Error("Failed to list free numbers", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("list free numbers: %w", err)
	}

	return &response.FreeNumbersResponse{Numbers: numbers}, nil
}

func (s *poolService) Reset(ctx context.Context) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Ticket.DeleteAll(ctx); err != nil {
			return err
		}
		return s.repo.Pool.ResetAll(ctx, s.config.Event.PoolSize)
	})
	if err != nil {
		s.log.Error("Failed to reset pool", zap.Error(err))
		return fmt.Errorf("reset pool: %w", err)
	}

	s.log.Warn("Pool and ledger reset", zap.Int("size", s.config.Event.PoolSize))
	return nil
}
