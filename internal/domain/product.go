package domain

import "context"

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	SKU         *string `gorm:"size:50;uniqueIndex" json:"sku"`
	ImageURL    *string `gorm:"size:255" json:"image_url"`
}

// ImageFile is an uploaded image waiting to be pushed to the asset host.
type ImageFile struct {
	Filename string
	Data     []byte
}

// ProductInput holds the raw form values of a create or update request.
// Empty strings mean "not provided".
type ProductInput struct {
	Name        string
	Description string
	SKU         string
	ImageURL    string
	Image       *ImageFile
}

type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id uint) (*Product, error)
	// NameOrSKUTaken reports whether another product (id != excludeID) already uses name or sku.
	NameOrSKUTaken(ctx context.Context, name string, sku *string, excludeID uint) (bool, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

// FileStorage stores an image and returns the public URL it is reachable at.
type FileStorage interface {
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
}
