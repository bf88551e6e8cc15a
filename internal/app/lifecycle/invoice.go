package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/role"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Issuer creates the single invoice of a paid request.
type Issuer struct {
	base
	vat      decimal.Decimal
	store    ObjectStore
	renderer InvoiceRenderer
}

// Amounts splits a pre-tax price into invoice lines: total = net*(1+vat),
// base = total/(1+vat), tax = total-base, all rounded to cents.
func (i *Issuer) Amounts(net decimal.Decimal) (base, tax, total decimal.Decimal) {
	factor := decimal.NewFromInt(1).Add(i.vat)
	total = net.Mul(factor).Round(2)
	base = total.Div(factor).Round(2)
	tax = total.Sub(base)
	return base, tax, total
}

// IssueFor returns the invoice of the request, creating it on first call.
// Repeated or concurrent calls all observe the same invoice.
func (i *Issuer) IssueFor(ctx context.Context, requestID uuid.UUID) (*ds.Invoice, error) {
	const op = "issueFor"
	fields := logrus.Fields{"request_id": requestID}

	tctx, cancel := i.withTimeout(ctx)
	defer cancel()

	var (
		invoice *ds.Invoice
		req     *ds.Request
	)
	err := i.repo.Transaction(tctx, func(tx *repository.Repository) error {
		var err error
		req, err = tx.GetRequest(requestID)
		if err != nil {
			return err
		}
		if req.PaidAt == nil {
			return apperr.Newf(apperr.InvalidTransition, op, "%s is not paid", req.DisplayID)
		}

		invoice, err = tx.GetInvoiceByRequest(requestID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			base, tax, total := i.Amounts(req.Amount)
			invoice = &ds.Invoice{
				RequestID: req.ID,
				ClientID:  req.ClientID,
				Base:      base,
				Tax:       tax,
				Amount:    total,
				Status:    ds.InvoiceIssued,
				CreatedAt: i.now(),
			}
			if err := tx.CreateInvoice(invoice); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// the number is derived from the id the insert produced
		if invoice.DisplayID == nil {
			displayID := fmt.Sprintf("INV-%08d", invoice.ID)
			if err := tx.SetInvoiceDisplayID(invoice.ID, displayID); err != nil {
				return err
			}
			invoice.DisplayID = &displayID
		}
		if req.InvoiceDisplayID == nil || *req.InvoiceDisplayID != *invoice.DisplayID {
			if err := tx.StampInvoiceDisplayID(req.ID, *invoice.DisplayID); err != nil {
				return err
			}
			req.InvoiceDisplayID = invoice.DisplayID
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost the insert race on request_id; the winner's invoice is complete
		invoice, err = i.repo.WithContext(tctx).GetInvoiceByRequest(requestID)
		if err == nil {
			req, err = i.repo.WithContext(tctx).GetRequest(requestID)
		}
	}
	if err != nil {
		err = i.fail(op, err, fields)
		if apperr.KindOf(err) == apperr.Internal {
			err = apperr.Wrap(apperr.DependencyFailure, op, err)
		}
		return nil, err
	}

	if invoice.StorageKey == nil && i.store != nil {
		i.archive(ctx, invoice, req)
	}
	return invoice, nil
}

// archive stores the rendered document. Runs outside any transaction; a
// failure leaves the invoice valid and without a document.
func (i *Issuer) archive(ctx context.Context, invoice *ds.Invoice, req *ds.Request) {
	log := logrus.WithFields(logrus.Fields{"request_id": req.ID, "invoice_id": invoice.ID})

	data, name, err := i.renderer.Render(*invoice, *req)
	if err != nil {
		log.Errorf("render invoice: %v", err)
		return
	}
	key, err := i.store.Put(ctx, data, name)
	if err != nil {
		log.Errorf("store invoice document: %v", err)
		return
	}

	tctx, cancel := i.withTimeout(ctx)
	defer cancel()
	if err := i.repo.WithContext(tctx).SetInvoiceStorageKey(invoice.ID, key); err != nil {
		log.Errorf("save invoice document key: %v", err)
		return
	}
	invoice.StorageKey = &key
}

// RetryPending issues invoices for paid requests that still lack one.
// Returns how many were issued; individual failures are logged and skipped.
func (i *Issuer) RetryPending(ctx context.Context, limit int) (int, error) {
	tctx, cancel := i.withTimeout(ctx)
	pending, err := i.repo.WithContext(tctx).ListUninvoicedPaid(limit)
	cancel()
	if err != nil {
		return 0, i.fail("retryInvoices", err, nil)
	}

	issued := 0
	for _, req := range pending {
		if ctx.Err() != nil {
			return issued, apperr.Wrap(apperr.Unavailable, "retryInvoices", ctx.Err())
		}
		if _, err := i.IssueFor(ctx, req.ID); err != nil {
			continue
		}
		issued++
	}
	return issued, nil
}

// ForRequest returns the invoice of a request to its client or an admin.
func (i *Issuer) ForRequest(ctx context.Context, a Actor, requestID uuid.UUID) (*ds.Invoice, error) {
	const op = "invoiceForRequest"

	ctx, cancel := i.withTimeout(ctx)
	defer cancel()

	invoice, err := i.repo.WithContext(ctx).GetInvoiceByRequest(requestID)
	if err != nil {
		return nil, i.fail(op, err, logrus.Fields{"request_id": requestID})
	}
	if !canSeeInvoice(a, invoice) {
		return nil, apperr.New(apperr.Forbidden, op, "not your invoice")
	}
	return invoice, nil
}

// Get returns an invoice by id to its client or an admin.
func (i *Issuer) Get(ctx context.Context, a Actor, invoiceID uint) (*ds.Invoice, error) {
	const op = "getInvoice"

	ctx, cancel := i.withTimeout(ctx)
	defer cancel()

	invoice, err := i.repo.WithContext(ctx).GetInvoice(invoiceID)
	if err != nil {
		return nil, i.fail(op, err, logrus.Fields{"invoice_id": invoiceID})
	}
	if !canSeeInvoice(a, invoice) {
		return nil, apperr.New(apperr.Forbidden, op, "not your invoice")
	}
	return invoice, nil
}

// Document streams the stored invoice document.
func (i *Issuer) Document(ctx context.Context, a Actor, invoiceID uint) (io.ReadCloser, *ds.Invoice, error) {
	const op = "invoiceDocument"

	invoice, err := i.Get(ctx, a, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice.StorageKey == nil || i.store == nil {
		return nil, nil, apperr.New(apperr.NotFound, op, "invoice document not stored yet")
	}

	body, err := i.store.Get(ctx, *invoice.StorageKey)
	if err != nil {
		return nil, nil, i.fail(op, apperr.Wrap(apperr.DependencyFailure, op, err), logrus.Fields{"invoice_id": invoiceID})
	}
	return body, invoice, nil
}

func canSeeInvoice(a Actor, invoice *ds.Invoice) bool {
	return a.Role == role.Admin || (a.Role == role.Client && a.ID == invoice.ClientID)
}
