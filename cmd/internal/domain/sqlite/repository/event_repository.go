package repository

import (
	"slotswap/cmd/internal/domain/entity"
	"errors"
	"gorm.io/gorm"
)

type DefaultEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{db: db}
}

func (e *DefaultEventRepository) FindByID(id int) (*entity.Event, error) {
	var event entity.Event
	err := e.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &event, err
}

func (e *DefaultEventRepository) FindByOwnerID(id int) ([]*entity.Event, error) {
	var events []*entity.Event
	err := e.db.Where("owner_id = ?", id).Find(&events).Error
	return events, err
}

func (e *DefaultEventRepository) Save(event *entity.Event) error {
	return e.db.Save(event).Error
}

// DeleteCascade removes an event together with every swap request that
// references it. Swaps still PENDING are first marked REJECTED and the
// counterpart event is put back on the market. One transaction: a
// failure at any step leaves the event and its swaps untouched.
func (e *DefaultEventRepository) DeleteCascade(event *entity.Event) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var swaps []*entity.SwapRequest
		err := tx.
			Where("my_event_id = ? OR their_event_id = ?", event.ID, event.ID).
			Find(&swaps).Error
		if err != nil {
			return err
		}

		for _, swap := range swaps {
			if swap.Status != entity.SwapPending {
				continue
			}

			err = tx.Model(&entity.SwapRequest{}).
				Where("id = ?", swap.ID).
				Update("status", entity.SwapRejected).Error
			if err != nil {
				return err
			}

			otherID := swap.MyEventID
			if otherID == event.ID {
				otherID = swap.TheirEventID
			}

			err = tx.Model(&entity.Event{}).
				Where("id = ?", otherID).
				Update("status", entity.StatusSwappable).Error
			if err != nil {
				return err
			}
		}

		err = tx.
			Where("my_event_id = ? OR their_event_id = ?", event.ID, event.ID).
			Delete(&entity.SwapRequest{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(event).Error
	})
}
