package domain

import (
	"context"
	"io"
	"time"
)

type QuotationStatus string

const (
	QuotationStatusPending   QuotationStatus = "Pending"
	QuotationStatusResponded QuotationStatus = "Responded"
)

type Quotation struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CustomerName     string          `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail    string          `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone    *string         `gorm:"size:20" json:"customer_phone"`
	CustomerComments *string         `gorm:"type:text" json:"customer_comments"`
	Status           QuotationStatus `gorm:"size:20;not null;default:Pending;index" json:"status"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	AdminResponse    *string         `gorm:"type:text" json:"admin_response"`
	Items            []QuotationItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type QuotationItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Quantity    int      `gorm:"not null" json:"quantity"`
	QuotationID uint     `gorm:"not null;index" json:"quotation_id"`
	ProductID   *uint    `gorm:"index" json:"product_id"`
	Product     *Product `gorm:"constraint:OnDelete:SET NULL" json:"product"`
}

type QuotationItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type QuotationInput struct {
	CustomerName     string               `json:"customer_name"`
	CustomerEmail    string               `json:"customer_email"`
	CustomerPhone    string               `json:"customer_phone"`
	CustomerComments string               `json:"customer_comments"`
	Items            []QuotationItemInput `json:"items"`
}

type QuotationRepo interface {
	// Create persists q and its items atomically. Every item must reference an existing product.
	Create(ctx context.Context, q *Quotation) error
	List(ctx context.Context) ([]Quotation, error)
	FindByID(ctx context.Context, id uint) (*Quotation, error)
	Respond(ctx context.Context, id uint, response string) (*Quotation, error)
	Delete(ctx context.Context, id uint) error
}

type EmailOutcome string

const (
	EmailSent    EmailOutcome = "sent"
	EmailSkipped EmailOutcome = "skipped"
	EmailFailed  EmailOutcome = "failed"
)

// Notifier tells the customer about the admin response. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, q *Quotation) EmailOutcome
}

type Mailer interface {
	Configured() bool
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type QuotationExporter interface {
	Export(w io.Writer, list []Quotation) error
}
