package entity

// SwapRequest status values. PENDING is the only non-terminal state.
const (
	SwapPending  = "PENDING"
	SwapAccepted = "ACCEPTED"
	SwapRejected = "REJECTED"
)

// SwapRequest links two events owned by two different users. MyEvent is
// the proposer's slot at creation time, TheirEvent the responder's.
type SwapRequest struct {
	ID           int    `gorm:"primaryKey"`
	ProposerID   int    `gorm:"not null"` // References: users(id)
	ResponderID  int    `gorm:"not null"` // References: users(id)
	MyEventID    int    `gorm:"not null"` // References: events(id)
	TheirEventID int    `gorm:"not null"` // References: events(id)
	Status       string `gorm:"not null;default:PENDING"`
	CreatedAt    int64  `gorm:"not null"`

	// Relations
	Proposer   User  `gorm:"foreignKey:ProposerID;references:ID"`
	Responder  User  `gorm:"foreignKey:ResponderID;references:ID"`
	MyEvent    Event `gorm:"foreignKey:MyEventID;references:ID"`
	TheirEvent Event `gorm:"foreignKey:TheirEventID;references:ID"`
}
