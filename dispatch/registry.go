package dispatch

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/models"
)

var (
	ErrRiderNotFound      = errors.New("rider not found")
	ErrRiderNotAvailable  = errors.New("rider not available")
	ErrInvalidRiderStatus = errors.New("invalid rider status")
)

// Registry tracks rider availability and the rider's current assignment.
// Claim and Release are the only ways a rider moves in and out of
// "On Order"; self-service toggling is limited to Available/Day Off.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// ListAvailable returns riders that can take an order right now.
func (r *Registry) ListAvailable(ctx context.Context) ([]models.Rider, error) {
	var riders []models.Rider
	err := r.db.WithContext(ctx).
		Where("status = ? AND current_order_id IS NULL", models.RiderAvailable).
		Order("name asc").
		Find(&riders).Error
	return riders, err
}

// Get fetches a rider by id.
func (r *Registry) Get(ctx context.Context, riderID uint) (*models.Rider, error) {
	var rider models.Rider
	if err := r.db.WithContext(ctx).First(&rider, riderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRiderNotFound
		}
		return nil, err
	}
	return &rider, nil
}

// SetStatus is the rider's self-service toggle. Only Available and
// Day Off are accepted; On Order is reserved for the dispatcher.
func (r *Registry) SetStatus(ctx context.Context, riderID uint, status models.RiderStatus) error {
	if status != models.RiderAvailable && status != models.RiderDayOff {
		return ErrInvalidRiderStatus
	}
	rider, err := r.Get(ctx, riderID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(rider).Update("status", status).Error
}

// Claim atomically moves a rider from Available to On Order and pins the
// order. The conditional update is the whole race guard: two concurrent
// claims on the same rider can only match the WHERE clause once.
func (r *Registry) Claim(ctx context.Context, riderID, orderID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Rider{}).
		Where("id = ? AND status = ?", riderID, models.RiderAvailable).
		Updates(map[string]interface{}{
			"status":           models.RiderOnOrder,
			"current_order_id": orderID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Rider{}).
			Where("id = ?", riderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRiderNotFound
		}
		return ErrRiderNotAvailable
	}
	return nil
}

// Release frees a rider after delivery, completion or cancellation.
func (r *Registry) Release(ctx context.Context, riderID uint) error {
	return r.db.WithContext(ctx).Model(&models.Rider{}).
		Where("id = ?", riderID).
		Updates(map[string]interface{}{
			"status":           models.RiderAvailable,
			"current_order_id": nil,
		}).Error
}
