package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T, repo Repository) chi.Router {
	t.Helper()
	svc := newServiceUnderTest(t, repo)
	r := chi.NewRouter()
	NewHandler(nil, svc).MountRoutes(r)
	return r
}

func TestHandlerReport(t *testing.T) {
	router := newTestRouter(t, serviceFixtureRepo())

	req := httptest.NewRequest("GET", "/reports/general?date_from=2023-03-01&date_to=2023-03-31&with_init_balance=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var vm ReportViewModel
	if err := json.Unmarshal(rec.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.Title != "General Ledger" || len(vm.Groups) != 2 {
		t.Fatalf("unexpected payload: %+v", vm)
	}
	if vm.Totals.Debit != 350 {
		t.Fatalf("unexpected totals: %+v", vm.Totals)
	}
}

func TestHandlerReportRejectsUnknownType(t *testing.T) {
	router := newTestRouter(t, serviceFixtureRepo())

	req := httptest.NewRequest("GET", "/reports/balance_sheet", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlerReportRejectsBadDates(t *testing.T) {
	router := newTestRouter(t, serviceFixtureRepo())

	req := httptest.NewRequest("GET", "/reports/general?date_from=2023-04-01&date_to=2023-03-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlerInvalidate(t *testing.T) {
	router := newTestRouter(t, serviceFixtureRepo())

	req := httptest.NewRequest("POST", "/reports/cache/invalidate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
