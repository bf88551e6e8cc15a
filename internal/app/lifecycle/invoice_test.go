package lifecycle

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository/repotest"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestAmounts(t *testing.T) {
	issuer := &Issuer{vat: DefaultVATRate}

	tests := []struct {
		net, base, tax, total string
	}{
		{"500", "500", "75", "575"},
		{"100", "100", "15", "115"},
		{"99.99", "99.99", "15", "114.99"},
		{"0.01", "0.01", "0", "0.01"},
	}
	for _, tt := range tests {
		base, tax, total := issuer.Amounts(dec(tt.net))
		if !base.Equal(dec(tt.base)) || !tax.Equal(dec(tt.tax)) || !total.Equal(dec(tt.total)) {
			t.Errorf("Amounts(%s) = %s + %s = %s, want %s + %s = %s",
				tt.net, base, tax, total, tt.base, tt.tax, tt.total)
		}
		if !base.Add(tax).Equal(total) {
			t.Errorf("Amounts(%s): base + tax != total", tt.net)
		}
	}
}

func TestConfiguredVATRate(t *testing.T) {
	tests := []struct {
		name       string
		rate       decimal.NullDecimal
		tax, total string
	}{
		{"unset", decimal.NullDecimal{}, "75", "575"},
		{"zero", decimal.NewNullDecimal(decimal.Zero), "0", "500"},
		{"twenty percent", decimal.NewNullDecimal(dec("0.2")), "100", "600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarnessOn(t, repotest.Open(t), Config{VATRate: tt.rate}, Deps{})
			req := h.paid(h.service("500", "80"))

			invoice, err := h.engine.Issuer.ForRequest(h.ctx, h.client, req.ID)
			if err != nil {
				t.Fatalf("ForRequest: %v", err)
			}
			if !invoice.Tax.Equal(dec(tt.tax)) || !invoice.Amount.Equal(dec(tt.total)) {
				t.Errorf("invoice tax %s total %s, want %s %s", invoice.Tax, invoice.Amount, tt.tax, tt.total)
			}
		})
	}
}

func TestConfirmPaymentIssuesOneInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockObjectStore(ctrl)
	store.EXPECT().
		Put(gomock.Any(), gomock.Any(), "INV-00000001.json").
		Return("invoices/INV-00000001.json", nil).
		Times(1)

	h := newHarness(t, Deps{Store: store})
	req := h.checkout(h.service("500", "80"))

	paid, invoice, err := h.engine.Machine.ConfirmPayment(h.ctx, req.ID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if paid.Status != ds.StatusNew || paid.PaidAt == nil {
		t.Fatalf("after payment: status %s paid_at %v", paid.Status, paid.PaidAt)
	}
	if *invoice.DisplayID != "INV-00000001" {
		t.Errorf("invoice number = %s, want INV-00000001", *invoice.DisplayID)
	}
	if !invoice.Amount.Equal(dec("575")) || !invoice.Base.Equal(dec("500")) || !invoice.Tax.Equal(dec("75")) {
		t.Errorf("invoice = %s + %s = %s, want 500 + 75 = 575", invoice.Base, invoice.Tax, invoice.Amount)
	}
	if paid.InvoiceDisplayID == nil || *paid.InvoiceDisplayID != *invoice.DisplayID {
		t.Errorf("request invoice id = %v, want %s", paid.InvoiceDisplayID, *invoice.DisplayID)
	}

	// replayed webhook: no new invoice, no second upload
	again, invoice2, err := h.engine.Machine.ConfirmPayment(h.ctx, req.ID)
	if err != nil {
		t.Fatalf("second ConfirmPayment: %v", err)
	}
	if invoice2.ID != invoice.ID {
		t.Errorf("second call returned invoice %d, want %d", invoice2.ID, invoice.ID)
	}
	if !again.PaidAt.Equal(*paid.PaidAt) {
		t.Errorf("paid_at moved from %v to %v", paid.PaidAt, again.PaidAt)
	}

	n, err := h.repo.CountInvoices(req.ID)
	if err != nil {
		t.Fatalf("CountInvoices: %v", err)
	}
	if n != 1 {
		t.Fatalf("invoices = %d, want 1", n)
	}
}

func TestIssueForConcurrentCallers(t *testing.T) {
	h := newHarness(t, Deps{})
	req := h.paid(h.service("500", "80"))

	const callers = 8
	var wg sync.WaitGroup
	numbers := make(chan string, callers)
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			invoice, err := h.engine.Issuer.IssueFor(h.ctx, req.ID)
			if err != nil {
				errs <- err
				return
			}
			numbers <- *invoice.DisplayID
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Errorf("IssueFor: %v", err)
	}
	for n := range numbers {
		if n != "INV-00000001" {
			t.Errorf("invoice number = %s, want INV-00000001", n)
		}
	}
	if n, _ := h.repo.CountInvoices(req.ID); n != 1 {
		t.Fatalf("invoices = %d, want 1", n)
	}
}

func TestConfirmPaymentRequiresPayableRequest(t *testing.T) {
	h := newHarness(t, Deps{})
	req := h.checkout(h.service("500", "80"))

	if _, err := h.engine.Machine.Cancel(h.ctx, req.ID, h.client); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, _, err := h.engine.Machine.ConfirmPayment(h.ctx, req.ID); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("ConfirmPayment on cancelled: err = %v, want InvalidTransition", err)
	}
	if n, _ := h.repo.CountInvoices(req.ID); n != 0 {
		t.Fatalf("invoices = %d, want 0", n)
	}
}

func TestIssueForUnpaid(t *testing.T) {
	h := newHarness(t, Deps{})
	req := h.checkout(h.service("500", "80"))

	if _, err := h.engine.Issuer.IssueFor(h.ctx, req.ID); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("err = %v, want InvalidTransition", err)
	}
}

func TestArchiveFailureKeepsInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockObjectStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket offline")),
		store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return("invoices/INV-00000001.json", nil),
	)
	store.EXPECT().Get(gomock.Any(), "invoices/INV-00000001.json").
		Return(io.NopCloser(strings.NewReader(`{"number":"INV-00000001"}`)), nil)

	h := newHarness(t, Deps{Store: store})
	req := h.paid(h.service("500", "80"))

	invoice, err := h.engine.Issuer.ForRequest(h.ctx, h.client, req.ID)
	if err != nil {
		t.Fatalf("ForRequest: %v", err)
	}
	if invoice.StorageKey != nil {
		t.Fatalf("storage key = %s after failed upload", *invoice.StorageKey)
	}
	if _, _, err := h.engine.Issuer.Document(h.ctx, h.client, invoice.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Document before upload: err = %v, want NotFound", err)
	}

	// reissuing an invoice without a document retries the upload
	if _, err := h.engine.Issuer.IssueFor(h.ctx, req.ID); err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	body, _, err := h.engine.Issuer.Document(h.ctx, h.client, invoice.ID)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if !strings.Contains(string(data), "INV-00000001") {
		t.Errorf("document = %s", data)
	}
}

func TestInvoiceVisibility(t *testing.T) {
	h := newHarness(t, Deps{})
	other := h.user("other", h.client.Role)
	req := h.paid(h.service("500", "80"))

	if _, err := h.engine.Issuer.ForRequest(h.ctx, h.admin, req.ID); err != nil {
		t.Fatalf("ForRequest by admin: %v", err)
	}
	if _, err := h.engine.Issuer.ForRequest(h.ctx, other, req.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("ForRequest by other client: err = %v, want Forbidden", err)
	}
}

func TestRetryPendingBackfills(t *testing.T) {
	h := newHarness(t, Deps{})
	svc := h.service("500", "80")

	// simulate payments whose issuance never ran
	var ids []*ds.Request
	for range 3 {
		req := h.checkout(svc)
		if _, err := h.repo.UpdateRequestGuarded(req.ID, repoGuard(ds.StatusPendingPayment),
			map[string]interface{}{"status": ds.StatusNew, "paid_at": h.engine.Issuer.now()}); err != nil {
			t.Fatalf("mark paid: %v", err)
		}
		ids = append(ids, req)
	}

	issued, err := h.engine.Issuer.RetryPending(h.ctx, 10)
	if err != nil {
		t.Fatalf("RetryPending: %v", err)
	}
	if issued != 3 {
		t.Fatalf("issued = %d, want 3", issued)
	}
	for _, req := range ids {
		if got := h.reload(req); got.InvoiceDisplayID == nil {
			t.Errorf("%s still has no invoice", got.DisplayID)
		}
	}

	issued, err = h.engine.Issuer.RetryPending(h.ctx, 10)
	if err != nil || issued != 0 {
		t.Fatalf("second RetryPending = %d, %v; want 0, nil", issued, err)
	}
}
