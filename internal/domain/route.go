package domain

import "time"

type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "Low"
	TrafficMedium TrafficLevel = "Medium"
	TrafficHigh   TrafficLevel = "High"
)

type Route struct {
	ID           int64        `json:"id"`
	RouteID      int64        `json:"routeId"`
	DistanceKm   float64      `json:"distanceKm"`
	TrafficLevel TrafficLevel `json:"trafficLevel"`
	BaseTimeMin  float64      `json:"baseTimeMin"`
	CreatedAt    time.Time    `json:"createdAt"`
	Version      int32        `json:"-"`
}
