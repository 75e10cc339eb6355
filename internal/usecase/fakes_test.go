package usecase

import (
	"context"
	"sort"
	"time"

	"ticket-office/internal/data/entity"
	"ticket-office/internal/data/repository"
	"ticket-office/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakeDB satisfies database.PgxIface for service tests. WithTx simply runs
// fn: transactional rollback is the driver's job, not the services'.
type fakeDB struct {
	execErr error
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeDB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }

func (f *fakeDB) Close() {}

type fakePoolRepo struct {
	entries map[int]*entity.PoolEntry
	size    int

	claimErr error
}

func newFakePoolRepo(size int) *fakePoolRepo {
	p := &fakePoolRepo{entries: make(map[int]*entity.PoolEntry), size: size}
	for i := 1; i <= size; i++ {
		p.entries[i] = &entity.PoolEntry{Number: i, Status: entity.NumberStatusFree}
	}
	return p
}

func (p *fakePoolRepo) SeedIfEmpty(ctx context.Context, size int) error {
	if len(p.entries) > 0 {
		return nil
	}
	for i := 1; i <= size; i++ {
		p.entries[i] = &entity.PoolEntry{Number: i, Status: entity.NumberStatusFree}
	}
	p.size = size
	return nil
}

func (p *fakePoolRepo) TryClaim(ctx context.Context, number int, ticketID, buyerName string, assignedAt time.Time) (bool, error) {
	if p.claimErr != nil {
		return false, p.claimErr
	}
	entry, ok := p.entries[number]
	if !ok || entry.Status != entity.NumberStatusFree {
		return false, nil
	}
	entry.Status = entity.NumberStatusUsed
	entry.TicketID = &ticketID
	entry.BuyerName = &buyerName
	entry.AssignedAt = &assignedAt
	return true, nil
}

func (p *fakePoolRepo) ClaimLowestFree(ctx context.Context, ticketID, buyerName string, assignedAt time.Time) (int, error) {
	if p.claimErr != nil {
		return 0, p.claimErr
	}
	for _, number := range p.sortedNumbers() {
		if p.entries[number].Status == entity.NumberStatusFree {
			claimed, err := p.TryClaim(ctx, number, ticketID, buyerName, assignedAt)
			if err != nil || !claimed {
				continue
			}
			return number, nil
		}
	}
	return 0, entity.ErrPoolExhausted
}

func (p *fakePoolRepo) Summary(ctx context.Context) (*entity.PoolSummary, error) {
	summary := &entity.PoolSummary{Total: len(p.entries)}
	for _, entry := range p.entries {
		if entry.Status == entity.NumberStatusFree {
			summary.Free++
		}
	}
	summary.Used = summary.Total - summary.Free
	return summary, nil
}

func (p *fakePoolRepo) ListFree(ctx context.Context, limit int) ([]int, error) {
	free := make([]int, 0, limit)
	for _, number := range p.sortedNumbers() {
		if len(free) == limit {
			break
		}
		if p.entries[number].Status == entity.NumberStatusFree {
			free = append(free, number)
		}
	}
	return free, nil
}

func (p *fakePoolRepo) ListAll(ctx context.Context) ([]*entity.PoolEntry, error) {
	entries := make([]*entity.PoolEntry, 0, len(p.entries))
	for _, number := range p.sortedNumbers() {
		entries = append(entries, p.entries[number])
	}
	return entries, nil
}

func (p *fakePoolRepo) ResetAll(ctx context.Context, size int) error {
	p.entries = make(map[int]*entity.PoolEntry)
	for i := 1; i <= size; i++ {
		p.entries[i] = &entity.PoolEntry{Number: i, Status: entity.NumberStatusFree}
	}
	p.size = size
	return nil
}

func (p *fakePoolRepo) sortedNumbers() []int {
	numbers := make([]int, 0, len(p.entries))
	for number := range p.entries {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers
}

type fakeTicketRepo struct {
	tickets map[string]*entity.Ticket
	order   []string

	createErr error
	findErr   error
	listErr   error

	// beforeMarkUsed runs ahead of the conditional write, standing in for
	// a concurrent caller landing between the read and the write.
	beforeMarkUsed func()
	markUsedCalls  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*entity.Ticket)}
}

func (t *fakeTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	if t.createErr != nil {
		return t.createErr
	}
	copied := *ticket
	t.tickets[ticket.ID] = &copied
	t.order = append(t.order, ticket.ID)
	return nil
}

func (t *fakeTicketRepo) FindByID(ctx context.Context, id string) (*entity.Ticket, error) {
	if t.findErr != nil {
		return nil, t.findErr
	}
	ticket, ok := t.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *ticket
	return &copied, nil
}

func (t *fakeTicketRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	t.markUsedCalls++
	if t.beforeMarkUsed != nil {
		t.beforeMarkUsed()
	}
	ticket, ok := t.tickets[id]
	if !ok || ticket.Status == entity.TicketStatusUsed {
		return false, nil
	}
	ticket.Status = entity.TicketStatusUsed
	ticket.UsedAt = &usedAt
	return true, nil
}

func (t *fakeTicketRepo) FindRecent(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	if t.listErr != nil {
		return nil, t.listErr
	}
	var tickets []*entity.Ticket
	for i := len(t.order) - 1; i >= 0 && len(tickets) < limit; i-- {
		copied := *t.tickets[t.order[i]]
		tickets = append(tickets, &copied)
	}
	return tickets, nil
}

func (t *fakeTicketRepo) Stats(ctx context.Context) (*entity.TicketStats, error) {
	stats := &entity.TicketStats{ByCategory: make(map[string]int)}
	for _, ticket := range t.tickets {
		stats.ByCategory[ticket.Category]++
		stats.Total++
	}
	return stats, nil
}

func (t *fakeTicketRepo) FindAllBySerial(ctx context.Context) ([]*entity.Ticket, error) {
	if t.listErr != nil {
		return nil, t.listErr
	}
	tickets := make([]*entity.Ticket, 0, len(t.tickets))
	for _, ticket := range t.tickets {
		copied := *ticket
		tickets = append(tickets, &copied)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].SerialNo < tickets[j].SerialNo })
	return tickets, nil
}

func (t *fakeTicketRepo) DeleteAll(ctx context.Context) error {
	t.tickets = make(map[string]*entity.Ticket)
	t.order = nil
	return nil
}

func testConfig(poolSize int) *utils.Config {
	return &utils.Config{
		Event: utils.EventConfig{
			Name:            "Test Event",
			PoolSize:        poolSize,
			DefaultCategory: "Standard",
			DefaultSeat:     "Free seating",
		},
		Backup: utils.BackupConfig{Keep: 14},
	}
}

func testRepository(pool *fakePoolRepo, ticket *fakeTicketRepo) *repository.Repository {
	repos := repository.NewRepository(&fakeDB{}, zap.NewNop())
	repos.Pool = pool
	repos.Ticket = ticket
	return repos
}
