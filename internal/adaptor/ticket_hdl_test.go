package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ticket-office/internal/data/entity"
	"ticket-office/internal/dto/request"
	"ticket-office/internal/dto/response"
	"ticket-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type fakeTicketService struct {
	issueResp *response.CreateTicketResponse
	issueErr  error
	getResp   *response.TicketResponse
	getErr    error
	exportErr error
}

func (f *fakeTicketService) IssueTicket(ctx context.Context, req *request.CreateTicketRequest) (*response.CreateTicketResponse, error) {
	return f.issueResp, f.issueErr
}

func (f *fakeTicketService) GetTicketByID(ctx context.Context, id string) (*response.TicketResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakeTicketService) GetRecent(ctx context.Context, limit int) (*response.RecentTicketsResponse, error) {
	return &response.RecentTicketsResponse{}, nil
}

func (f *fakeTicketService) GetStats(ctx context.Context) (*response.TicketStatsResponse, error) {
	return &response.TicketStatsResponse{}, nil
}

func (f *fakeTicketService) ExportCSV(ctx context.Context, w io.Writer) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	_, err := w.Write([]byte("serial_no,id,buyer_name,ticket_category,status,issued_at,used_at\r\n"))
	return err
}

func (f *fakeTicketService) Issued() <-chan entity.Ticket {
	return nil
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		body     string
		svc      *fakeTicketService
		wantCode int
	}{
		{
			name: "created",
			body: `{"buyer_name":"Aiza"}`,
			svc: &fakeTicketService{issueResp: &response.CreateTicketResponse{
				Ticket: response.TicketResponse{ID: "TCK-20251109-A1B2C3D4", SerialNo: 1},
			}},
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing buyer name",
			body:     `{}`,
			svc:      &fakeTicketService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "number unavailable conflict",
			body:     `{"buyer_name":"Aiza","serial_no":3}`,
			svc:      &fakeTicketService{issueErr: entity.ErrNumberUnavailable},
			wantCode: http.StatusConflict,
		},
		{
			name:     "pool exhausted conflict",
			body:     `{"buyer_name":"Aiza"}`,
			svc:      &fakeTicketService{issueErr: entity.ErrPoolExhausted},
			wantCode: http.StatusConflict,
		},
		{
			name:     "number out of range",
			body:     `{"buyer_name":"Aiza","serial_no":9999}`,
			svc:      &fakeTicketService{issueErr: entity.ErrNumberOutOfRange},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewTicketHandler(tc.svc, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/tickets", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.CreateTicket(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}

			var envelope utils.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("unmarshal envelope: %v", err)
			}
			if wantOK := tc.wantCode == http.StatusCreated; envelope.Status != wantOK {
				t.Fatalf("expected envelope status %v, got %v", wantOK, envelope.Status)
			}
		})
	}
}

func TestTicketHandler_GetByID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		svc      *fakeTicketService
		wantCode int
	}{
		{
			name: "found",
			svc: &fakeTicketService{getResp: &response.TicketResponse{
				ID: "TCK-20251109-A1B2C3D4", BuyerName: "Aiza", SerialNo: 1,
			}},
			wantCode: http.StatusOK,
		},
		{
			name:     "not found",
			svc:      &fakeTicketService{getErr: entity.ErrTicketNotFound},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewTicketHandler(tc.svc, zap.NewNop())

			r := chi.NewRouter()
			r.Get("/api/tickets/{id}", handler.GetByID)

			req := httptest.NewRequest(http.MethodGet, "/api/tickets/TCK-20251109-A1B2C3D4", nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTicketHandler_ExportCSV(t *testing.T) {
	t.Parallel()

	t.Run("serves CSV with attachment headers", func(t *testing.T) {
		handler := NewTicketHandler(&fakeTicketService{}, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
		rec := httptest.NewRecorder()

		handler.ExportCSV(rec, req)

		if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
			t.Fatalf("unexpected content type: %s", got)
		}
		if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "tickets.csv") {
			t.Fatalf("unexpected content disposition: %s", got)
		}
		if !strings.HasPrefix(rec.Body.String(), "serial_no,") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("storage failure is a 500, not a truncated CSV", func(t *testing.T) {
		handler := NewTicketHandler(&fakeTicketService{exportErr: errors.New("storage down")}, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
		rec := httptest.NewRecorder()

		handler.ExportCSV(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if got := rec.Header().Get("Content-Disposition"); got != "" {
			t.Fatalf("expected no attachment headers on failure, got %s", got)
		}
	})
}
