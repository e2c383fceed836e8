package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phenrril/envatex/internal/domain"
)

type QuotationUC struct {
	Quotations domain.QuotationRepo
	Notifier   domain.Notifier
	Exporter   domain.QuotationExporter
	Now        func() time.Time
}

func (uc *QuotationUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now().UTC()
	}
	return time.Now().UTC()
}

// Create is public: any visitor may ask for a quotation.
func (uc *QuotationUC) Create(ctx context.Context, in domain.QuotationInput) (*domain.Quotation, error) {
	name := strings.TrimSpace(in.CustomerName)
	email := strings.TrimSpace(in.CustomerEmail)
	if name == "" || email == "" {
		return nil, domain.NewError(domain.ErrMissingField, "Se requieren nombre y correo del cliente (customer_name y customer_email)")
	}
	q := &domain.Quotation{
		CustomerName:     name,
		CustomerEmail:    email,
		CustomerPhone:    optional(strings.TrimSpace(in.CustomerPhone)),
		CustomerComments: optional(strings.TrimSpace(in.CustomerComments)),
		Status:           domain.QuotationStatusPending,
		CreatedAt:        uc.now(),
	}
	for i, it := range in.Items {
		if it.ProductID == 0 {
			return nil, domain.NewError(domain.ErrInvalidField, fmt.Sprintf("Item %d: product_id es obligatorio", i+1))
		}
		if it.Quantity <= 0 {
			return nil, domain.NewError(domain.ErrInvalidField, fmt.Sprintf("Item %d: la cantidad debe ser mayor a cero", i+1))
		}
		pid := it.ProductID
		q.Items = append(q.Items, domain.QuotationItem{ProductID: &pid, Quantity: it.Quantity})
	}
	if err := uc.Quotations.Create(ctx, q); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, domain.Internal("Ocurrió un error", err)
	}
	return q, nil
}

func (uc *QuotationUC) List(ctx context.Context, claims domain.Claims) ([]domain.Quotation, error) {
	if !claims.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	list, err := uc.Quotations.List(ctx)
	if err != nil {
		return nil, domain.Internal("No se pudieron obtener las cotizaciones", err)
	}
	return list, nil
}

// Respond records the admin response and then notifies the customer.
// The notification outcome never changes the result of the update.
func (uc *QuotationUC) Respond(ctx context.Context, claims domain.Claims, id uint, response *string) (*domain.Quotation, domain.EmailOutcome, error) {
	if !claims.IsAdmin() {
		return nil, "", domain.ErrAdminRequired
	}
	if response == nil {
		return nil, "", domain.NewError(domain.ErrMissingField, "'admin_response' es obligatorio en el cuerpo de la petición")
	}
	q, err := uc.Quotations.Respond(ctx, id, *response)
	if err != nil {
		return nil, "", quotationLookupErr(id, err, "No se pudo actualizar la cotización")
	}
	outcome := domain.EmailSkipped
	if uc.Notifier != nil {
		outcome = uc.Notifier.Notify(context.WithoutCancel(ctx), q)
	}
	return q, outcome, nil
}

func (uc *QuotationUC) Delete(ctx context.Context, claims domain.Claims, id uint) error {
	if !claims.IsAdmin() {
		return domain.ErrAdminRequired
	}
	if err := uc.Quotations.Delete(ctx, id); err != nil {
		return quotationLookupErr(id, err, "No se pudo eliminar la cotización")
	}
	return nil
}

func (uc *QuotationUC) Export(ctx context.Context, claims domain.Claims, w io.Writer) error {
	if !claims.IsAdmin() {
		return domain.ErrAdminRequired
	}
	if uc.Exporter == nil {
		return domain.Internal("Exportación no disponible", nil)
	}
	list, err := uc.Quotations.List(ctx)
	if err != nil {
		return domain.Internal("No se pudieron obtener las cotizaciones", err)
	}
	if err := uc.Exporter.Export(w, list); err != nil {
		return domain.Internal("No se pudo generar el archivo", err)
	}
	return nil
}

// RespondMessage is the client-facing summary for a respond call.
func RespondMessage(outcome domain.EmailOutcome) string {
	msg := "Cotización actualizada correctamente"
	switch outcome {
	case domain.EmailSent:
		return msg + ". Email enviado al cliente"
	case domain.EmailFailed:
		return msg + ". No se pudo enviar el email"
	default:
		return msg + ". Email no enviado (notificaciones deshabilitadas)"
	}
}

func quotationLookupErr(id uint, err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewError(domain.ErrNotFound, fmt.Sprintf("Cotización con id %d no encontrada", id))
	}
	return domain.Internal(msg, err)
}
