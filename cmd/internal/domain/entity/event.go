package entity

// Event status values. SWAP_PENDING is only ever set by the swap
// transaction path; owners toggle the other two freely.
const (
	StatusBusy        = "BUSY"
	StatusSwappable   = "SWAPPABLE"
	StatusSwapPending = "SWAP_PENDING"
)

type Event struct {
	ID        int    `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	StartsAt  int64  `gorm:"not null"`
	EndsAt    int64  `gorm:"not null"`
	OwnerID   int    `gorm:"not null"` // References: users(id)
	Status    string `gorm:"not null;default:BUSY"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}
