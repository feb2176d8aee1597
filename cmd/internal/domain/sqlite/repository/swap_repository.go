package repository

import (
	"slotswap/cmd/internal/domain/entity"
	"errors"
	"gorm.io/gorm"
)

type DefaultSwapRepository struct {
	db *gorm.DB
}

func NewSwapRepository(db *gorm.DB) *DefaultSwapRepository {
	return &DefaultSwapRepository{db: db}
}

func (s *DefaultSwapRepository) FindByID(id int) (*entity.SwapRequest, error) {
	var swap entity.SwapRequest
	err := s.db.First(&swap, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &swap, err
}

// FindSwappable lists every event currently on the market except the
// caller's own, with the owner row preloaded for display.
func (s *DefaultSwapRepository) FindSwappable(excludeOwnerID int) ([]*entity.Event, error) {
	var events []*entity.Event
	err := s.db.
		Preload("Owner").
		Where("status = ?", entity.StatusSwappable).
		Where("owner_id <> ?", excludeOwnerID).
		Find(&events).Error
	return events, err
}

func (s *DefaultSwapRepository) FindByResponderID(id int) ([]*entity.SwapRequest, error) {
	return s.findWith("responder_id = ?", id)
}

func (s *DefaultSwapRepository) FindByProposerID(id int) ([]*entity.SwapRequest, error) {
	return s.findWith("proposer_id = ?", id)
}

func (s *DefaultSwapRepository) findWith(cond string, id int) ([]*entity.SwapRequest, error) {
	var swaps []*entity.SwapRequest
	err := s.db.
		Preload("MyEvent").
		Preload("TheirEvent").
		Preload("Proposer").
		Preload("Responder").
		Where(cond, id).
		Order("created_at desc").
		Find(&swaps).Error
	return swaps, err
}

// CreateProposal inserts a PENDING swap request and moves both events
// into SWAP_PENDING. Each event is claimed with a conditional update so
// a slot that stopped being SWAPPABLE since the caller's check (taken
// by another proposal, toggled by its owner, deleted) aborts the whole
// transaction with ErrSlotNotSwappable.
func (s *DefaultSwapRepository) CreateProposal(swap *entity.SwapRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, eventID := range []int{swap.MyEventID, swap.TheirEventID} {
			res := tx.Model(&entity.Event{}).
				Where("id = ? AND status = ?", eventID, entity.StatusSwappable).
				Update("status", entity.StatusSwapPending)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrSlotNotSwappable
			}
		}
		return tx.Create(swap).Error
	})
}

// Reject resolves a PENDING request as REJECTED and returns both events
// to SWAPPABLE. The request row is claimed conditionally; losing the
// claim means the request was already resolved.
func (s *DefaultSwapRepository) Reject(swap *entity.SwapRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := claimRequest(tx, swap.ID, entity.SwapRejected); err != nil {
			return err
		}

		return tx.Model(&entity.Event{}).
			Where("id IN ?", []int{swap.MyEventID, swap.TheirEventID}).
			Update("status", entity.StatusSwappable).Error
	})
}

// Accept resolves a PENDING request as ACCEPTED, trades the owner
// fields of the two events and parks both as BUSY. All preconditions
// are re-derived inside the transaction: the request must still be
// PENDING and both events must still exist in SWAP_PENDING, otherwise
// everything rolls back. Of two concurrent accepts exactly one claims
// the request row and wins.
func (s *DefaultSwapRepository) Accept(swap *entity.SwapRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := claimRequest(tx, swap.ID, entity.SwapAccepted); err != nil {
			return err
		}

		handovers := []struct {
			eventID    int
			newOwnerID int
		}{
			{swap.MyEventID, swap.ResponderID},
			{swap.TheirEventID, swap.ProposerID},
		}

		for _, h := range handovers {
			res := tx.Model(&entity.Event{}).
				Where("id = ? AND status = ?", h.eventID, entity.StatusSwapPending).
				Updates(map[string]any{
					"owner_id": h.newOwnerID,
					"status":   entity.StatusBusy,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStaleSwap
			}
		}
		return nil
	})
}

// claimRequest flips a request out of PENDING, failing with
// ErrRequestNotPending if some other transaction already resolved it.
func claimRequest(tx *gorm.DB, id int, status string) error {
	res := tx.Model(&entity.SwapRequest{}).
		Where("id = ? AND status = ?", id, entity.SwapPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotPending
	}
	return nil
}
