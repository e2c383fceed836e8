package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/phenrril/envatex/internal/domain"
)

func (s *Server) apiProductList(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiProductCreate(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	in, err := readProductForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.products.Create(r.Context(), claims, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Producto creado", "product": p})
}

func (s *Server) apiProductUpdate(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, domain.NewError(domain.ErrNotFound, "Producto no encontrado"))
		return
	}
	in, err := readProductForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.products.Update(r.Context(), claims, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Producto actualizado", "product": p})
}

func (s *Server) apiProductDelete(w http.ResponseWriter, r *http.Request, claims domain.Claims) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, r, domain.NewError(domain.ErrNotFound, "Producto no encontrado"))
		return
	}
	if err := s.products.Delete(r.Context(), claims, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Producto eliminado"})
}

// readProductForm accepts multipart (with an optional "image" file) or urlencoded bodies.
func readProductForm(r *http.Request) (domain.ProductInput, error) {
	var in domain.ProductInput
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return in, &domain.Error{Kind: domain.ErrInvalidField, Message: "Formulario inválido", Details: err.Error()}
		}
		if err := r.ParseForm(); err != nil {
			return in, &domain.Error{Kind: domain.ErrInvalidField, Message: "Formulario inválido", Details: err.Error()}
		}
	}
	in.Name = r.FormValue("name")
	in.Description = r.FormValue("description")
	in.SKU = r.FormValue("sku")
	in.ImageURL = r.FormValue("image_url")

	if r.MultipartForm == nil {
		return in, nil
	}
	fhs := r.MultipartForm.File["image"]
	if len(fhs) == 0 || fhs[0].Filename == "" {
		return in, nil
	}
	f, err := fhs[0].Open()
	if err != nil {
		return in, &domain.Error{Kind: domain.ErrUpload, Message: "No se pudo subir la imagen", Details: err.Error()}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return in, &domain.Error{Kind: domain.ErrUpload, Message: "No se pudo subir la imagen", Details: err.Error()}
	}
	if len(data) > 0 {
		in.Image = &domain.ImageFile{Filename: fhs[0].Filename, Data: data}
	}
	return in, nil
}
