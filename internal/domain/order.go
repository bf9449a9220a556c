package domain

import "time"

type Order struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"orderId"`
	ValueRs      float64   `json:"valueRs"`
	RouteID      int64     `json:"routeId"`
	DeliveryTime string    `json:"deliveryTime"` // "HH:MM", nominal delivery time
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
