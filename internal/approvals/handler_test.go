package approvals_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/pkg/routes"
)

type fakeSystem struct {
	decideErr error
	decided   *approvals.DecideCommand
}

func (f *fakeSystem) Handler() *approvals.Handler { return nil }

func (f *fakeSystem) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]approvals.Approval, error) {
	return []approvals.Approval{}, nil
}

func (f *fakeSystem) Statuses(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]approvals.Status, error) {
	return map[string]approvals.Status{}, nil
}

func (f *fakeSystem) Decide(ctx context.Context, agreementID uuid.UUID, cmd approvals.DecideCommand) (*approvals.Approval, error) {
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	f.decided = &cmd
	now := time.Now()
	return &approvals.Approval{
		ID:          uuid.New(),
		AgreementID: agreementID,
		Recipient:   cmd.Recipient,
		Status:      cmd.Status,
		UpdatedAt:   now,
	}, nil
}

func newDecideServer(sys approvals.System) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, approvals.NewHandler(sys, discard()).Routes())
	return mux
}

func TestDecideRecordsStatus(t *testing.T) {
	sys := &fakeSystem{}
	mux := newDecideServer(sys)

	body := `{"recipient": "alex@example.com", "status": "Approved"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/approvals/"+uuid.NewString(), strings.NewReader(body))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if sys.decided == nil {
		t.Fatal("Decide was never invoked")
	}
	if sys.decided.Status != approvals.StatusApproved {
		t.Errorf("recorded status = %q, want %q", sys.decided.Status, approvals.StatusApproved)
	}
}

func TestDecideRejectsInvalidBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing status key", `{"recipient": "alex@example.com"}`},
		{"empty status", `{"recipient": "alex@example.com", "status": ""}`},
		{"unknown status", `{"recipient": "alex@example.com", "status": "maybe"}`},
		{"missing recipient", `{"status": "approved"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{}
			mux := newDecideServer(sys)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", "/approvals/"+uuid.NewString(), strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if sys.decided != nil {
				t.Error("Decide was invoked with an invalid command")
			}
		})
	}
}

func TestDecideUnknownAgreementIsNotFound(t *testing.T) {
	mux := newDecideServer(&fakeSystem{decideErr: approvals.ErrNotFound})

	body := `{"recipient": "alex@example.com", "status": "approved"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/approvals/"+uuid.NewString(), strings.NewReader(body))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
