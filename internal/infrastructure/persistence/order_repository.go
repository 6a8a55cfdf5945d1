package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/smartsales/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order header by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDWithItems finds an order with its items eagerly loaded
func (r *GormOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, items included
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Order{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// DeleteItems removes all items of an order
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&trade.OrderItem{}, "order_id = ?", orderID).Error
}

// Delete deletes an order; items cascade at the database level
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.DeleteItems(ctx, id); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&trade.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Limit > 0 {
		query = query.Offset(filter.Skip).Limit(filter.Limit)
	}
	return query.Order("created_at DESC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "id":
			query = query.Where("orders.id = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "created_since":
			if since, ok := value.(time.Time); ok {
				query = query.Where("orders.created_at >= ?", since)
			}
		case "created_until":
			if until, ok := value.(time.Time); ok {
				query = query.Where("orders.created_at <= ?", until)
			}
		case "section":
			sub := r.db.Model(&trade.OrderItem{}).
				Select("order_items.order_id").
				Joins("JOIN products ON products.id = order_items.product_id").
				Where("products.section ILIKE ?", "%"+value.(string)+"%")
			query = query.Where("orders.id IN (?)", sub)
		}
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
