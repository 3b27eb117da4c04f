package domain

import (
	"context"
	"time"

	"github.com/billfold/billfold/pkg/db/pagination"
)

// SaveState is the save pipeline state. A save attempt moves
// Draft -> Validating -> (Invalid | Persisting) -> (Persisted | Failed).
type SaveState string

const (
	SaveStateDraft      SaveState = "draft"
	SaveStateValidating SaveState = "validating"
	SaveStateInvalid    SaveState = "invalid"
	SaveStatePersisting SaveState = "persisting"
	SaveStatePersisted  SaveState = "persisted"
	SaveStateFailed     SaveState = "failed"
)

// SaveResponse reports the terminal pipeline state. Invoice is the canonical
// persisted record (fetched back after the write) when State is persisted.
type SaveResponse struct {
	State   SaveState `json:"state"`
	Invoice Invoice   `json:"invoice"`
	Totals  Totals    `json:"totals"`
}

type GetInvoiceResponse struct {
	Invoice Invoice `json:"invoice"`
	Totals  Totals  `json:"totals"`
}

type ListInvoiceRequest struct {
	PageToken   string
	PageSize    int
	Status      *InvoiceStatus
	Client      string
	CustomerID  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	// Save runs the full pipeline: validate, normalize, compute totals,
	// persist header + items atomically, fetch back the canonical record.
	Save(ctx context.Context, draft Draft) (SaveResponse, error)
	GetByID(ctx context.Context, id string) (GetInvoiceResponse, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) (Invoice, error)
}
