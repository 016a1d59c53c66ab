// Package dispatch assigns riders to orders and keeps rider availability
// consistent with order state.
package dispatch

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/FahadStacks1996/Mad/logger"
	"github.com/FahadStacks1996/Mad/models"
	"github.com/FahadStacks1996/Mad/routing"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyAssigned = errors.New("order already has a rider")
)

// Dispatcher orchestrates rider assignment: it claims the rider, pulls a
// round-trip estimate from the routing provider and stamps the dispatch
// snapshot onto the order. There is no distributed transaction across the
// two records; a failed order write reverts the rider claim instead.
type Dispatcher struct {
	db          *gorm.DB
	riders      *Registry
	routes      routing.Provider
	shopAddress string
	log         logger.ILogger
}

func NewDispatcher(db *gorm.DB, riders *Registry, routes routing.Provider, shopAddress string, log logger.ILogger) *Dispatcher {
	return &Dispatcher{db: db, riders: riders, routes: routes, shopAddress: shopAddress, log: log}
}

// AssignRider attaches an available rider to an order. On success the
// rider is On Order, the order is Out for Delivery and carries the
// round-trip distance, duration and ETA. The estimate degrades to zeros
// when the routing provider fails; the assignment itself still happens.
func (d *Dispatcher) AssignRider(ctx context.Context, orderID, riderID uint) (*models.Order, error) {
	var order models.Order
	if err := d.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.RiderID != nil {
		return nil, ErrOrderAlreadyAssigned
	}

	// Cheap pre-check for a clear error before the routing round trip.
	// The Claim below is the authoritative, race-safe gate.
	rider, err := d.riders.Get(ctx, riderID)
	if err != nil {
		return nil, err
	}
	if rider.Status != models.RiderAvailable {
		return nil, ErrRiderNotAvailable
	}

	toCustomer := d.leg(ctx, d.shopAddress, order.DeliveryAddress)
	backToShop := d.leg(ctx, order.DeliveryAddress, d.shopAddress)

	if err := d.riders.Claim(ctx, riderID, orderID); err != nil {
		return nil, err
	}

	now := time.Now()
	totalMin := toCustomer.DurationMin + backToShop.DurationMin
	eta := now.Add(time.Duration(totalMin * float64(time.Minute)))

	res := d.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND rider_id IS NULL", orderID).
		Updates(map[string]interface{}{
			"rider_id":                riderID,
			"tracking_status":         models.TrackingOutForDelivery,
			"estimated_delivery_time": eta,
			"delivery_distance_km":    toCustomer.DistanceKm + backToShop.DistanceKm,
			"delivery_duration_min":   totalMin,
			"delivery_distance_text":  joinLegText(toCustomer.DistanceText, backToShop.DistanceText),
			"delivery_duration_text":  joinLegText(toCustomer.DurationText, backToShop.DurationText),
			"rider_assigned_at":       now,
		})
	if res.Error != nil || res.RowsAffected == 0 {
		// Revert the claim so the rider isn't stranded On Order.
		if relErr := d.riders.Release(ctx, riderID); relErr != nil {
			d.log.Error("release rider after failed order update",
				logger.Uint("rider_id", riderID), logger.Error(relErr))
		}
		if res.Error != nil {
			return nil, res.Error
		}
		return nil, ErrOrderAlreadyAssigned
	}

	var assigned models.Order
	if err := d.db.WithContext(ctx).Preload("Items").Preload("Rider").
		First(&assigned, orderID).Error; err != nil {
		return nil, err
	}
	d.log.Info("rider assigned",
		logger.Uint("order_id", orderID),
		logger.Uint("rider_id", riderID),
		logger.Float64("round_trip_min", totalMin))
	return &assigned, nil
}

// leg fetches one route leg, degrading to a zero estimate on failure.
func (d *Dispatcher) leg(ctx context.Context, origin, destination string) routing.Estimate {
	est, err := d.routes.Route(ctx, origin, destination)
	if err != nil {
		d.log.Warning("routing provider failed, using zero estimate",
			logger.String("origin", origin),
			logger.String("destination", destination),
			logger.Error(err))
		return routing.Estimate{}
	}
	return est
}

func joinLegText(a, b string) string {
	if a == "" && b == "" {
		return ""
	}
	return a + " + " + b
}
