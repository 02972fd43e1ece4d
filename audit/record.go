package audit

import "time"

// Dispatch outcome values stored on a Record
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusObserved = "observed"
)

// Record is one row of the dispatch audit trail
type Record struct {
	ID          string    `gorm:"primaryKey"`
	DispatchID  string    `gorm:"index"`
	RequestType string    `gorm:"index;not null"`
	Status      string    `gorm:"not null"`
	Error       string
	DurationMs  int64
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides the default table name
func (Record) TableName() string {
	return "dispatch_audit"
}
