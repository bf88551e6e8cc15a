package repository

import (
	"marketplace/internal/app/ds"

	"github.com/google/uuid"
)

func (r *Repository) GetInvoice(id uint) (*ds.Invoice, error) {
	var invoice ds.Invoice
	if err := r.db.First(&invoice, id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *Repository) GetInvoiceByRequest(requestID uuid.UUID) (*ds.Invoice, error) {
	var invoice ds.Invoice
	if err := r.db.Where("request_id = ?", requestID).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *Repository) CountInvoices(requestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&ds.Invoice{}).Where("request_id = ?", requestID).Count(&count).Error
	return count, err
}

// CreateInvoice inserts the invoice; the store assigns its ID (the sequence number).
func (r *Repository) CreateInvoice(invoice *ds.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *Repository) SetInvoiceDisplayID(id uint, displayID string) error {
	return r.db.Model(&ds.Invoice{}).Where("id = ?", id).Update("display_id", displayID).Error
}

func (r *Repository) SetInvoiceStorageKey(id uint, key string) error {
	return r.db.Model(&ds.Invoice{}).Where("id = ?", id).Update("storage_key", key).Error
}
