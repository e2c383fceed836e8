package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/envatex/internal/domain"
)

func TestProductCreate(t *testing.T) {
	products := newFakeProducts()
	uc := &ProductUC{Products: products, Storage: &fakeStorage{}}
	ctx := context.Background()

	p, err := uc.Create(ctx, admin, domain.ProductInput{Name: " Botella ", SKU: "B-1", ImageURL: "https://img/b.png"})
	require.NoError(t, err)
	assert.Equal(t, "Botella", p.Name)
	assert.Equal(t, "B-1", *p.SKU)
	assert.Equal(t, "https://img/b.png", *p.ImageURL)
	assert.Nil(t, p.Description)
}

func TestProductCreate_RequiresAdmin(t *testing.T) {
	uc := &ProductUC{Products: newFakeProducts()}

	_, err := uc.Create(context.Background(), visitor, domain.ProductInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductCreate_Validation(t *testing.T) {
	products := newFakeProducts()
	uc := &ProductUC{Products: products}
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, domain.ProductInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Create(ctx, admin, domain.ProductInput{Name: "Tapa", SKU: "T-1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, domain.ProductInput{Name: "Tapa"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Create(ctx, admin, domain.ProductInput{Name: "Otra", SKU: "T-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, _ := products.List(ctx)
	assert.Len(t, list, 1)
}

func TestProductCreate_UploadsImage(t *testing.T) {
	storage := &fakeStorage{}
	uc := &ProductUC{Products: newFakeProducts(), Storage: storage}

	p, err := uc.Create(context.Background(), admin, domain.ProductInput{
		Name: "Frasco", ImageURL: "ignored", Image: &domain.ImageFile{Filename: "frasco.png", Data: []byte("x")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, storage.calls)
	assert.Equal(t, "https://cdn.example.com/frasco.png", *p.ImageURL)
}

func TestProductCreate_UploadFailurePersistsNothing(t *testing.T) {
	products := newFakeProducts()
	uc := &ProductUC{Products: products, Storage: &fakeStorage{err: errBoom}}

	_, err := uc.Create(context.Background(), admin, domain.ProductInput{
		Name: "Frasco", Image: &domain.ImageFile{Filename: "frasco.png", Data: []byte("x")},
	})
	assert.ErrorIs(t, err, domain.ErrUpload)
	list, _ := products.List(context.Background())
	assert.Empty(t, list)
}

func TestProductUpdate_PartialFields(t *testing.T) {
	products := newFakeProducts()
	uc := &ProductUC{Products: products, Storage: &fakeStorage{}}
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, domain.ProductInput{Name: "Pote", Description: "200ml", SKU: "P-1"})
	require.NoError(t, err)

	got, err := uc.Update(ctx, admin, p.ID, domain.ProductInput{Description: "250ml"})
	require.NoError(t, err)
	assert.Equal(t, "Pote", got.Name)
	assert.Equal(t, "250ml", *got.Description)
	assert.Equal(t, "P-1", *got.SKU)

	got, err = uc.Update(ctx, admin, p.ID, domain.ProductInput{Image: &domain.ImageFile{Filename: "pote.jpg", Data: []byte("x")}})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pote.jpg", *got.ImageURL)
}

func TestProductUpdate_Errors(t *testing.T) {
	products := newFakeProducts()
	uc := &ProductUC{Products: products}
	ctx := context.Background()
	a, _ := uc.Create(ctx, admin, domain.ProductInput{Name: "A"})
	_, _ = uc.Create(ctx, admin, domain.ProductInput{Name: "B"})

	_, err := uc.Update(ctx, visitor, a.ID, domain.ProductInput{Name: "Z"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(ctx, admin, 99, domain.ProductInput{Name: "Z"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, admin, a.ID, domain.ProductInput{Name: "B"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, admin, a.ID, domain.ProductInput{Name: "A"})
	assert.NoError(t, err, "keeping its own name is not a conflict")
}

func TestProductDelete(t *testing.T) {
	products := newFakeProducts()
	uc := &ProductUC{Products: products}
	ctx := context.Background()
	p, _ := uc.Create(ctx, admin, domain.ProductInput{Name: "A"})

	assert.ErrorIs(t, uc.Delete(ctx, visitor, p.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, admin, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, admin, p.ID), domain.ErrNotFound)
}
