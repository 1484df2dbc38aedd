package service

import "canteen/internal/domain/entity"

// Metrics records business counters.
type Metrics interface {
	OrderPlaced(total float64)
	OrderAdvanced(to entity.OrderStatus)
	NotificationsCreated(n int)
	NotificationsRead(n int)
}
