package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ticket-office/internal/data/entity"
	"ticket-office/internal/data/repository"
	"ticket-office/internal/dto/request"
	"ticket-office/internal/dto/response"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

type TicketService interface {
	// IssueTicket claims a serial number and writes the ticket record as a
	// single transaction.
	IssueTicket(ctx context.Context, req *request.CreateTicketRequest) (*response.CreateTicketResponse, error)

	// Read-only projections over the ledger.
	GetTicketByID(ctx context.Context, id string) (*response.TicketResponse, error)
	GetRecent(ctx context.Context, limit int) (*response.RecentTicketsResponse, error)
	GetStats(ctx context.Context) (*response.TicketStatsResponse, error)
	ExportCSV(ctx context.Context, w io.Writer) error

	// Issued streams successfully committed tickets to downstream artifact
	// consumers.
	Issued() <-chan entity.Ticket
}

type ticketService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	issued chan entity.Ticket
}

func NewTicketService(repo *repository.Repository, config *utils.Config, log *zap.Logger) TicketService {
	return &ticketService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "ticket")),
		issued: make(chan entity.Ticket, 64),
	}
}

func (s *ticketService) IssueTicket(ctx context.Context, req *request.CreateTicketRequest) (*response.CreateTicketResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Issue ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	buyerName := strings.TrimSpace(req.BuyerName)
	if len([]rune(buyerName)) < 2 {
		return nil, entity.ErrBuyerNameTooShort
	}

	poolSize := s.config.Event.PoolSize
	if req.SerialNo != 0 && (req.SerialNo < 1 || req.SerialNo > poolSize) {
		return nil, fmt.Errorf("%w: number must be between 1 and %d", entity.ErrNumberOutOfRange, poolSize)
	}

	category := req.Category
	if category == "" {
		category = s.config.Event.DefaultCategory
	}
	seat := req.Seat
	if seat == "" {
		seat = s.config.Event.DefaultSeat
	}

	ticket := &entity.Ticket{
		ID:       utils.GenerateTicketID(),
		Event:    s.config.Event.Name,
		Buyer:    buyerName,
		Category: category,
		Seat:     seat,
		Status:   entity.TicketStatusIssued,
		IssuedAt: time.Now().UTC(),
	}

	// Claim the number and insert the ledger row as one unit. Any failure
	// rolls back both writes.
	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if req.SerialNo != 0 {
			claimed, err := s.repo.Pool.TryClaim(ctx, req.SerialNo, ticket.ID, buyerName, ticket.IssuedAt)
			if err != nil {
				return err
			}
			if !claimed {
				return entity.ErrNumberUnavailable
			}
			ticket.SerialNo = req.SerialNo
		} else {
			number, err := s.repo.Pool.ClaimLowestFree(ctx, ticket.ID, buyerName, ticket.IssuedAt)
			if err != nil {
				return err
			}
			ticket.SerialNo = number
		}

		return s.repo.Ticket.Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Ticket issued",
		zap.String("ticket_id", ticket.ID),
		zap.Int("serial_no", ticket.SerialNo),
		zap.String("buyer_name", buyerName),
		zap.String("category", category),
	)

	s.publishIssued(*ticket)

	return &response.CreateTicketResponse{Ticket: response.NewTicketResponse(ticket)}, nil
}

// publishIssued hands the committed ticket to the artifact pipeline. The
// allocation already succeeded; a full queue is logged and dropped rather
// than failing the request.
func (s *ticketService) publishIssued(ticket entity.Ticket) {
	select {
	case s.issued <- ticket:
	default:
		s.log.Warn("Issued ticket queue full, artifact job dropped",
			zap.String("ticket_id", ticket.ID),
		)
	}
}

func (s *ticketService) Issued() <-chan entity.Ticket {
	return s.issued
}

func (s *ticketService) GetTicketByID(ctx context.Context, id string) (*response.TicketResponse, error) {
	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get ticket", zap.Error(err), zap.String("ticket_id", id))
		return nil, fmt.Errorf("get ticket %s: %w", id, err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrTicketNotFound, id)
	}

	resp := response.NewTicketResponse(ticket)
	return &resp, nil
}

func (s *ticketService) GetRecent(ctx context.Context, limit int) (*response.RecentTicketsResponse, error) {
	tickets, err := s.repo.Ticket.FindRecent(ctx, limit)
	if err != nil {
		s.log.Error("Failed to get recent tickets", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("get recent tickets: %w", err)
	}

	resp := &response.RecentTicketsResponse{Tickets: make([]response.TicketResponse, len(tickets))}
	for i, ticket := range tickets {
		resp.Tickets[i] = response.NewTicketResponse(ticket)
	}
	return resp, nil
}

func (s *ticketService) GetStats(ctx context.Context) (*response.TicketStatsResponse, error) {
	stats, err := s.repo.Ticket.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to get ticket stats", zap.Error(err))
		return nil, fmt.Errorf("get ticket stats: %w", err)
	}

	return &response.TicketStatsResponse{
		Total:      stats.Total,
		ByCategory: stats.ByCategory,
	}, nil
}

func (s *ticketService) ExportCSV(ctx context.Context, w io.Writer) error {
	tickets, err := s.repo.Ticket.FindAllBySerial(ctx)
	if err != nil {
		s.log.Error("Failed to export tickets", zap.Error(err))
		return fmt.Errorf("export tickets: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write([]string{"serial_no", "id", "buyer_name", "ticket_category", "status", "issued_at", "used_at"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, ticket := range tickets {
		usedAt := ""
		if ticket.UsedAt != nil {
			usedAt = ticket.UsedAt.Format(time.RFC3339)
		}
		record := []string{
			strconv.Itoa(ticket.SerialNo),
			ticket.ID,
			ticket.Buyer,
			ticket.Category,
			string(ticket.Status),
			ticket.IssuedAt.Format(time.RFC3339),
			usedAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
