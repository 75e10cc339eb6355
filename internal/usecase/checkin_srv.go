package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-office/internal/data/entity"
	"ticket-office/internal/data/repository"
	"ticket-office/internal/dto/response"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

type CheckinService interface {
	// Verify resolves free-form scanner input into exactly one of the four
	// check-in outcomes. The returned error is non-nil only for storage
	// failures; races and repeats are regular outcomes, never errors.
	Verify(ctx context.Context, text string) (*response.VerifyResponse, error)
}

type checkinService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCheckinService(repo *repository.Repository, log *zap.Logger) CheckinService {
	return &checkinService{
		repo: repo,
		log:  log.With(zap.String("service", "checkin")),
	}
}

func (s *checkinService) Verify(ctx context.Context, text string) (*response.VerifyResponse, error) {
	ticketID := utils.ExtractTicketID(text)
	if ticketID == "" {
		return &response.VerifyResponse{
			Status: response.VerifyStatusError,
			Error:  entity.ErrTicketIDRequired.Error(),
		}, nil
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("verify ticket %s: %w", ticketID, err)
	}
	if ticket == nil {
		s.log.Info("Verify: unknown ticket", zap.String("ticket_id", ticketID))
		return &response.VerifyResponse{Status: response.VerifyStatusInvalid}, nil
	}

	if ticket.Status == entity.TicketStatusUsed {
		return s.alreadyUsed(ticket), nil
	}

	usedAt := time.Now().UTC()
	redeemed, err := s.repo.Ticket.MarkUsed(ctx, ticketID, usedAt)
	if err != nil {
		return nil, fmt.Errorf("verify ticket %s: %w", ticketID, err)
	}

	if !redeemed {
		// A concurrent caller won the transition between our read and the
		// conditional write. Report the stored state of the row, which is
		// immutable once used.
		current, err := s.repo.Ticket.FindByID(ctx, ticketID)
		if err != nil {
			return nil, fmt.Errorf("verify ticket %s: %w", ticketID, err)
		}
		if current == nil {
			return &response.VerifyResponse{Status: response.VerifyStatusInvalid}, nil
		}
		return s.alreadyUsed(current), nil
	}

	s.log.Info("Ticket checked in",
		zap.String("ticket_id", ticketID),
		zap.String("buyer_name", ticket.Buyer),
		zap.Time("used_at", usedAt),
	)

	return &response.VerifyResponse{
		Status:    response.VerifyStatusOK,
		TicketID:  ticketID,
		BuyerName: ticket.Buyer,
		UsedAt:    &usedAt,
	}, nil
}

func (s *checkinService) alreadyUsed(ticket *entity.Ticket) *response.VerifyResponse {
	s.log.Info("Verify: ticket already used",
		zap.String("ticket_id", ticket.ID),
		zap.Timep("used_at", ticket.UsedAt),
	)

	return &response.VerifyResponse{
		Status:    response.VerifyStatusAlreadyUsed,
		TicketID:  ticket.ID,
		BuyerName: ticket.Buyer,
		UsedAt:    ticket.UsedAt,
	}
}
