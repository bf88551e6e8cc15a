package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
)

//go:generate mockgen -source=collaborators.go -destination=mock_collaborators_test.go -package=lifecycle

// Notifier delivers out-of-band messages. Calls happen after the owning
// transaction has committed; failures are logged and never undo state.
type Notifier interface {
	NotifyInvite(ctx context.Context, expert ds.User, req ds.Request) error
	NotifyPayoutDecision(ctx context.Context, expertID uint, payout ds.PayoutRequest) error
}

// ObjectStore keeps invoice documents.
type ObjectStore interface {
	Put(ctx context.Context, data []byte, name string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// InvoiceRenderer turns an invoice into a document and a file name.
type InvoiceRenderer interface {
	Render(invoice ds.Invoice, req ds.Request) ([]byte, string, error)
}

// ExpertDirectory answers the eligible-experts query used when opening a pool.
type ExpertDirectory interface {
	EligibleExperts(ctx context.Context, skills []string) ([]ds.User, error)
}

type storeDirectory struct {
	repo *repository.Repository
}

func (d storeDirectory) EligibleExperts(ctx context.Context, skills []string) ([]ds.User, error) {
	return d.repo.WithContext(ctx).EligibleExperts(skills)
}

type nopNotifier struct{}

func (nopNotifier) NotifyInvite(context.Context, ds.User, ds.Request) error { return nil }

func (nopNotifier) NotifyPayoutDecision(context.Context, uint, ds.PayoutRequest) error { return nil }

// JSONRenderer writes the invoice as a JSON document.
type JSONRenderer struct{}

type invoiceDocument struct {
	Number    string `json:"number"`
	Request   string `json:"request"`
	ClientID  uint   `json:"client_id"`
	Base      string `json:"base"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
	IssuedAt  string `json:"issued_at"`
	RequestID string `json:"request_id"`
}

func (JSONRenderer) Render(invoice ds.Invoice, req ds.Request) ([]byte, string, error) {
	if invoice.DisplayID == nil {
		return nil, "", fmt.Errorf("invoice %d has no number yet", invoice.ID)
	}

	doc := invoiceDocument{
		Number:    *invoice.DisplayID,
		Request:   req.DisplayID,
		ClientID:  invoice.ClientID,
		Base:      invoice.Base.StringFixed(2),
		Tax:       invoice.Tax.StringFixed(2),
		Total:     invoice.Amount.StringFixed(2),
		IssuedAt:  invoice.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		RequestID: req.ID.String(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return data, *invoice.DisplayID + ".json", nil
}
