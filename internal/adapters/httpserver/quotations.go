package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phenrril/envatex/internal/domain"
	"github.com/phenrril/envatex/internal/usecase"
)

func (s *Server) apiQuotationCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.QuotationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, &domain.Error{Kind: domain.ErrMissingField, Message: "Se requieren nombre y correo del cliente (customer_name y customer_email)", Details: err.Error()})
		return
	}
	if _, err := s.quotations.Create(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Cotización creada correctamente"})
}

func (s *Server) apiQuotationList(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	list, err := s.quotations.List(r.Context(), claims)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiQuotationRespond(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	if !claims.IsAdmin() {
		writeError(w, r, domain.ErrAdminRequired)
		return
	}
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, domain.NewError(domain.ErrNotFound, "Cotización no encontrada"))
		return
	}
	var req struct {
		AdminResponse *string `json:"admin_response"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	q, outcome, err := s.quotations.Respond(r.Context(), claims, id, req.AdminResponse)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      usecase.RespondMessage(outcome),
		"quotation":    q,
		"email_status": outcome,
	})
}

func (s *Server) apiQuotationDelete(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, domain.NewError(domain.ErrNotFound, "Cotización no encontrada"))
		return
	}
	if err := s.quotations.Delete(r.Context(), claims, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Cotización eliminada"})
}

func (s *Server) apiQuotationExport(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	var buf bytes.Buffer
	if err := s.quotations.Export(r.Context(), claims, &buf); err != nil {
		writeError(w, r, err)
		return
	}
	name := fmt.Sprintf("cotizaciones-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
