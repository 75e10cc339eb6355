package usecase

import (
	"ticket-office/internal/data/repository"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Ticket  TicketService
	Checkin CheckinService
	Pool    PoolService
	Backup  BackupService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Ticket:  NewTicketService(repo, config, log),
		Checkin: NewCheckinService(repo, log),
		Pool:    NewPoolService(repo, config, log),
		Backup:  NewBackupService(repo, config, log),
	}
}
