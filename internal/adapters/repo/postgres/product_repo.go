package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phenrril/envatex/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	list := []domain.Product{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) NameOrSKUTaken(ctx context.Context, name string, sku *string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if sku != nil && *sku != "" {
		q = q.Where("name = ? OR sku = ?", name, *sku)
	} else {
		q = q.Where("name = ?", name)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"sku":         p.SKU,
			"image_url":   p.ImageURL,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Delete removes the product and detaches it from any quotation item that references it.
func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&domain.QuotationItem{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, id).Error
	})
}
