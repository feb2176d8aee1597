package service

import (
	"slotswap/cmd/internal/domain/entity"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type EventRepository interface {
	FindByID(id int) (*entity.Event, error)
	FindByOwnerID(id int) ([]*entity.Event, error)
	Save(event *entity.Event) error
	DeleteCascade(event *entity.Event) error
}

type EventRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	StartsAt string `json:"startTime" validate:"required,iso8601"`
	EndsAt   string `json:"endTime" validate:"required,iso8601"`
}

// EventPatchRequest carries a partial update; nil fields are left
// untouched. Status may move freely between BUSY and SWAPPABLE; only
// the swap ledger puts events into SWAP_PENDING.
type EventPatchRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	StartsAt *string `json:"startTime" validate:"omitempty,iso8601"`
	EndsAt   *string `json:"endTime" validate:"omitempty,iso8601"`
	Status   *string `json:"status" validate:"omitempty,oneof=BUSY SWAPPABLE SWAP_PENDING"`
}

type EventResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	StartsAt  string `json:"startTime"`
	EndsAt    string `json:"endTime"`
	OwnerID   int    `json:"ownerId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type DefaultEventService struct {
	EventRepo EventRepository
	Validate  *validator.Validate
}

func NewEventService(eventRepo EventRepository, validate *validator.Validate) *DefaultEventService {
	return &DefaultEventService{EventRepo: eventRepo, Validate: validate}
}

func (e *DefaultEventService) GetEvents(userID int) ([]*EventResponse, apierror.ErrorResponse) {
	events, err := e.EventRepo.FindByOwnerID(userID)
	if err != nil {
		log.Errorf("failed to find events for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*EventResponse, len(events))
	for i, event := range events {
		response[i] = toEventResponse(event)
	}
	return response, nil
}

func (e *DefaultEventService) CreateEvent(req *EventRequest, userID int) (*EventResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := e.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	// No overlap detection: a user may hold any number of events in
	// the same time range.
	begin, err := utils.FromEpoch(req.StartsAt)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	end, err := utils.FromEpoch(req.EndsAt)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	now := utils.NowUTC()
	event := &entity.Event{
		Title:     req.Title,
		StartsAt:  begin,
		EndsAt:    end,
		OwnerID:   userID,
		Status:    entity.StatusBusy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = e.EventRepo.Save(event)
	if err != nil {
		log.Errorf("failed to save event: %v", err)
		return nil, apierror.InternalServerError
	}
	return toEventResponse(event), nil
}

func (e *DefaultEventService) UpdateEvent(id int, req *EventPatchRequest, userID int) (*EventResponse, apierror.ErrorResponse) {
	event, apierr := e.fetchOwned(id, userID)
	if apierr != nil {
		return nil, apierr
	}

	if err := e.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.StartsAt != nil {
		begin, err := utils.FromEpoch(*req.StartsAt)
		if err != nil {
			return nil, apierror.MalformedBodyError
		}
		event.StartsAt = begin
	}
	if req.EndsAt != nil {
		end, err := utils.FromEpoch(*req.EndsAt)
		if err != nil {
			return nil, apierror.MalformedBodyError
		}
		event.EndsAt = end
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	event.UpdatedAt = utils.NowUTC()

	err := e.EventRepo.Save(event)
	if err != nil {
		log.Errorf("failed to update event %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toEventResponse(event), nil
}

func (e *DefaultEventService) DeleteEvent(id, userID int) apierror.ErrorResponse {
	event, apierr := e.fetchOwned(id, userID)
	if apierr != nil {
		return apierr
	}

	err := e.EventRepo.DeleteCascade(event)
	if err != nil {
		log.Errorf("failed to delete event %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// fetchOwned loads an event owned by userID. Absent and not-owned are
// both reported as not found so callers learn nothing about other
// users' rows.
func (e *DefaultEventService) fetchOwned(id, userID int) (*entity.Event, apierror.ErrorResponse) {
	event, err := e.EventRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch event by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if event == nil || event.OwnerID != userID {
		return nil, apierror.NotFoundError
	}
	return event, nil
}

func toEventResponse(event *entity.Event) *EventResponse {
	return &EventResponse{
		ID:        event.ID,
		Title:     event.Title,
		OwnerID:   event.OwnerID,
		Status:    event.Status,
		StartsAt:  utils.FormatEpoch(event.StartsAt),
		EndsAt:    utils.FormatEpoch(event.EndsAt),
		CreatedAt: utils.FormatEpoch(event.CreatedAt),
		UpdatedAt: utils.FormatEpoch(event.UpdatedAt),
	}
}
