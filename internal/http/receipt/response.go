package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/receipt"
)

type receiptResponse struct {
	ID                int64           `json:"id"`
	Filename          string          `json:"filename,omitempty"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"`
	CategoryID        int64           `json:"category_id"`
	CategoryName      string          `json:"category"`
	VendorID          *int64          `json:"vendor_id,omitempty"`
	VendorName        string          `json:"vendor,omitempty"`
	PaymentMethodID   int64           `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(rc *receipt.Receipt) receiptResponse {
	return receiptResponse{
		ID:                rc.ID,
		Filename:          rc.Filename,
		Description:       rc.Description,
		Amount:            rc.Amount,
		Date:              rc.Date.Format(time.DateOnly),
		CategoryID:        rc.CategoryID,
		CategoryName:      rc.CategoryName,
		VendorID:          rc.VendorID,
		VendorName:        rc.VendorName,
		PaymentMethodID:   rc.PaymentMethodID,
		PaymentMethodName: rc.PaymentMethodName,
		CreatedAt:         rc.CreatedAt,
		UpdatedAt:         rc.UpdatedAt,
	}
}

func toResponseList(receipts []*receipt.Receipt) []receiptResponse {
	resp := make([]receiptResponse, len(receipts))
	for i, rc := range receipts {
		resp[i] = toResponse(rc)
	}

	return resp
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTagResponseList(tags []catalog.Tag) []tagResponse {
	resp := make([]tagResponse, len(tags))
	for i, t := range tags {
		resp[i] = tagResponse{ID: t.ID, Name: t.Name}
	}

	return resp
}

type itemResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func toItemResponseList(items []receipt.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = itemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}

	return resp
}
