package models

// OrderCounter holds the per-day order number sequence. One row per
// calendar date, keyed DDMMYYYY. The sequence only ever increases.
type OrderCounter struct {
	Date string `json:"date" gorm:"primaryKey"`
	Seq  int64  `json:"seq" gorm:"not null;default:0"`
}
