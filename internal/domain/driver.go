package domain

import "time"

// Driver is a snapshot of one delivery driver. The engine only reads
// Past7DayHours; CurrentShiftHours is informational and kept for the
// management endpoints.
type Driver struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	CurrentShiftHours float64   `json:"currentShiftHours"`
	Past7DayHours     []float64 `json:"past7DayHours"` // oldest first, index 6 is yesterday
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}
