package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/envatex/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
	Storage  domain.FileStorage
}

func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	list, err := uc.Products.List(ctx)
	if err != nil {
		return nil, domain.Internal("No se pudieron obtener los productos", err)
	}
	return list, nil
}

func (uc *ProductUC) Create(ctx context.Context, claims domain.Claims, in domain.ProductInput) (*domain.Product, error) {
	if !claims.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	in = trimInput(in)
	if in.Name == "" {
		return nil, domain.NewError(domain.ErrMissingField, "El nombre es obligatorio")
	}
	p := &domain.Product{
		Name:        in.Name,
		Description: optional(in.Description),
		SKU:         optional(in.SKU),
	}
	taken, err := uc.Products.NameOrSKUTaken(ctx, p.Name, p.SKU, 0)
	if err != nil {
		return nil, domain.Internal("No se pudo crear el producto", err)
	}
	if taken {
		return nil, domain.NewError(domain.ErrConflict, "Ya existe un producto con el mismo nombre o SKU")
	}
	imageURL, err := uc.resolveImage(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ImageURL = optional(imageURL)
	if err := uc.Products.Create(ctx, p); err != nil {
		return nil, domain.Internal("No se pudo crear el producto", err)
	}
	return p, nil
}

// Update overwrites only the fields that came non-empty in the request.
func (uc *ProductUC) Update(ctx context.Context, claims domain.Claims, id uint, in domain.ProductInput) (*domain.Product, error) {
	if !claims.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, productLookupErr(id, err, "No se pudo actualizar el producto")
	}
	in = trimInput(in)
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = optional(in.Description)
	}
	if in.SKU != "" {
		p.SKU = optional(in.SKU)
	}
	if in.Name != "" || in.SKU != "" {
		taken, err := uc.Products.NameOrSKUTaken(ctx, p.Name, p.SKU, p.ID)
		if err != nil {
			return nil, domain.Internal("No se pudo actualizar el producto", err)
		}
		if taken {
			return nil, domain.NewError(domain.ErrConflict, "Ya existe un producto con el mismo nombre o SKU")
		}
	}
	imageURL, err := uc.resolveImage(ctx, in)
	if err != nil {
		return nil, err
	}
	if imageURL != "" {
		p.ImageURL = optional(imageURL)
	}
	if err := uc.Products.Update(ctx, p); err != nil {
		return nil, productLookupErr(id, err, "No se pudo actualizar el producto")
	}
	return p, nil
}

func (uc *ProductUC) Delete(ctx context.Context, claims domain.Claims, id uint) error {
	if !claims.IsAdmin() {
		return domain.ErrAdminRequired
	}
	if err := uc.Products.Delete(ctx, id); err != nil {
		return productLookupErr(id, err, "No se pudo eliminar el producto")
	}
	return nil
}

// resolveImage uploads the attached file, or falls back to the image_url form value.
func (uc *ProductUC) resolveImage(ctx context.Context, in domain.ProductInput) (string, error) {
	if in.Image == nil || len(in.Image.Data) == 0 {
		return in.ImageURL, nil
	}
	if uc.Storage == nil {
		return "", &domain.Error{Kind: domain.ErrUpload, Message: "No se pudo subir la imagen", Details: "almacenamiento no configurado"}
	}
	url, err := uc.Storage.SaveImage(ctx, in.Image.Filename, in.Image.Data)
	if err != nil {
		zlog.Error().Err(err).Str("file", in.Image.Filename).Msg("upload imagen")
		return "", &domain.Error{Kind: domain.ErrUpload, Message: "No se pudo subir la imagen", Details: err.Error()}
	}
	return url, nil
}

func productLookupErr(id uint, err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewError(domain.ErrNotFound, fmt.Sprintf("Producto con id %d no encontrado", id))
	}
	return domain.Internal(msg, err)
}

func trimInput(in domain.ProductInput) domain.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.SKU = strings.TrimSpace(in.SKU)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
