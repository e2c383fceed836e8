package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/phenrril/envatex/internal/domain"
)

type QuotationRepo struct{ db *gorm.DB }

func NewQuotationRepo(db *gorm.DB) *QuotationRepo { return &QuotationRepo{db: db} }

func (r *QuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range q.Items {
			if it.ProductID == nil {
				return domain.NewError(domain.ErrInvalidField, "product_id es obligatorio en cada item")
			}
			var n int64
			if err := tx.Model(&domain.Product{}).Where("id = ?", *it.ProductID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domain.NewError(domain.ErrNotFound, fmt.Sprintf("Producto con id %d no encontrado", *it.ProductID))
			}
		}
		return tx.Create(q).Error
	})
}

func (r *QuotationRepo) List(ctx context.Context) ([]domain.Quotation, error) {
	list := []domain.Quotation{}
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		Order("created_at desc").Order("id desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Items == nil {
			list[i].Items = []domain.QuotationItem{}
		}
	}
	return list, nil
}

func (r *QuotationRepo) FindByID(ctx context.Context, id uint) (*domain.Quotation, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *QuotationRepo) find(db *gorm.DB, id uint) (*domain.Quotation, error) {
	var q domain.Quotation
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if q.Items == nil {
		q.Items = []domain.QuotationItem{}
	}
	return &q, nil
}

// Respond stores the admin response and marks the quotation as responded.
func (r *QuotationRepo) Respond(ctx context.Context, id uint, response string) (*domain.Quotation, error) {
	var out *domain.Quotation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		err := tx.Model(&domain.Quotation{}).Where("id = ?", id).Updates(map[string]any{
			"admin_response": response,
			"status":         domain.QuotationStatusResponded,
		}).Error
		if err != nil {
			return err
		}
		q, err := r.find(tx, id)
		if err != nil {
			return err
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *QuotationRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q domain.Quotation
		if err := tx.First(&q, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Where("quotation_id = ?", id).Delete(&domain.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Quotation{}, id).Error
	})
}
