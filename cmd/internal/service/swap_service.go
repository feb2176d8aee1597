package service

import (
	"errors"

	"slotswap/cmd/internal/domain/entity"
	"slotswap/cmd/internal/domain/sqlite/repository"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type SwapRepository interface {
	FindByID(id int) (*entity.SwapRequest, error)
	FindSwappable(excludeOwnerID int) ([]*entity.Event, error)
	FindByResponderID(id int) ([]*entity.SwapRequest, error)
	FindByProposerID(id int) ([]*entity.SwapRequest, error)
	CreateProposal(swap *entity.SwapRequest) error
	Accept(swap *entity.SwapRequest) error
	Reject(swap *entity.SwapRequest) error
}

type SwapProposalRequest struct {
	MySlotID    int `json:"mySlotId"`
	TheirSlotID int `json:"theirSlotId"`
}

type SwapResponseRequest struct {
	Accept bool `json:"accept"`
}

type SlotOwner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// SwappableSlot is a marketplace entry: someone else's event plus who
// owns it.
type SwappableSlot struct {
	EventResponse
	Owner *SlotOwner `json:"owner"`
}

type SwapRequestResponse struct {
	ID           int            `json:"id"`
	ProposerID   int            `json:"proposerId"`
	ResponderID  int            `json:"responderId"`
	MyEventID    int            `json:"myEventId"`
	TheirEventID int            `json:"theirEventId"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"createdAt"`
	MyEvent      *EventResponse `json:"myEvent,omitempty"`
	TheirEvent   *EventResponse `json:"theirEvent,omitempty"`
	Proposer     *SlotOwner     `json:"proposer,omitempty"`
	Responder    *SlotOwner     `json:"responder,omitempty"`
}

type SwapRequestList struct {
	Incoming []*SwapRequestResponse `json:"incoming"`
	Outgoing []*SwapRequestResponse `json:"outgoing"`
}

type SwapStatusResponse struct {
	Status string `json:"status"`
}

type DefaultSwapService struct {
	SwapRepo  SwapRepository
	EventRepo EventRepository
}

func NewSwapService(swapRepo SwapRepository, eventRepo EventRepository) *DefaultSwapService {
	return &DefaultSwapService{SwapRepo: swapRepo, EventRepo: eventRepo}
}

func (s *DefaultSwapService) GetSwappableSlots(userID int) ([]*SwappableSlot, apierror.ErrorResponse) {
	events, err := s.SwapRepo.FindSwappable(userID)
	if err != nil {
		log.Errorf("failed to fetch swappable slots for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	slots := make([]*SwappableSlot, len(events))
	for i, event := range events {
		slots[i] = &SwappableSlot{
			EventResponse: *toEventResponse(event),
			Owner: &SlotOwner{
				ID:    event.Owner.ID,
				Name:  event.Owner.Name,
				Email: event.Owner.Email,
			},
		}
	}
	return slots, nil
}

// CreateSwapRequest validates the proposal ladder, then has the
// repository claim both slots and insert the PENDING request in one
// transaction. The ladder checks run on a plain read; the claim
// re-derives the SWAPPABLE precondition inside the transaction.
func (s *DefaultSwapService) CreateSwapRequest(req *SwapProposalRequest, userID int) (*SwapRequestResponse, apierror.ErrorResponse) {
	if req.MySlotID == 0 || req.TheirSlotID == 0 {
		return nil, apierror.MissingSlotIDsError
	}

	myEvent, err := s.EventRepo.FindByID(req.MySlotID)
	if err != nil {
		log.Errorf("failed to fetch event %d: %v", req.MySlotID, err)
		return nil, apierror.InternalServerError
	}
	theirEvent, err := s.EventRepo.FindByID(req.TheirSlotID)
	if err != nil {
		log.Errorf("failed to fetch event %d: %v", req.TheirSlotID, err)
		return nil, apierror.InternalServerError
	}

	if myEvent == nil || myEvent.OwnerID != userID {
		return nil, apierror.InvalidSlotError
	}
	if theirEvent == nil || theirEvent.OwnerID == userID {
		return nil, apierror.SelfSwapError
	}
	if myEvent.Status != entity.StatusSwappable || theirEvent.Status != entity.StatusSwappable {
		return nil, apierror.SlotNotSwappableError
	}

	swap := &entity.SwapRequest{
		ProposerID:   userID,
		ResponderID:  theirEvent.OwnerID,
		MyEventID:    myEvent.ID,
		TheirEventID: theirEvent.ID,
		Status:       entity.SwapPending,
		CreatedAt:    utils.NowUTC(),
	}

	err = s.SwapRepo.CreateProposal(swap)
	if errors.Is(err, repository.ErrSlotNotSwappable) {
		return nil, apierror.SlotNotSwappableError
	}
	if err != nil {
		log.Errorf("failed to create swap request: %v", err)
		return nil, apierror.InternalServerError
	}
	return toSwapRequestResponse(swap), nil
}

// Respond resolves a pending request as the responder. Preconditions
// checked here are re-derived inside the repository transaction, so a
// request resolved concurrently comes back as not-pending rather than
// double-applied.
func (s *DefaultSwapService) Respond(requestID int, accept bool, userID int) (*SwapStatusResponse, apierror.ErrorResponse) {
	swap, err := s.SwapRepo.FindByID(requestID)
	if err != nil {
		log.Errorf("failed to fetch swap request %d: %v", requestID, err)
		return nil, apierror.InternalServerError
	}

	if swap == nil {
		return nil, apierror.RequestNotFoundError
	}
	if swap.ResponderID != userID {
		return nil, apierror.NotResponderError
	}
	if swap.Status != entity.SwapPending {
		return nil, apierror.RequestNotPendingError
	}

	if !accept {
		err = s.SwapRepo.Reject(swap)
		if apierr := mapSwapError(err, requestID); apierr != nil {
			return nil, apierr
		}
		return &SwapStatusResponse{Status: entity.SwapRejected}, nil
	}

	err = s.SwapRepo.Accept(swap)
	if apierr := mapSwapError(err, requestID); apierr != nil {
		return nil, apierr
	}
	return &SwapStatusResponse{Status: entity.SwapAccepted}, nil
}

func (s *DefaultSwapService) GetRequests(userID int) (*SwapRequestList, apierror.ErrorResponse) {
	incoming, err := s.SwapRepo.FindByResponderID(userID)
	if err != nil {
		log.Errorf("failed to fetch incoming requests for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	outgoing, err := s.SwapRepo.FindByProposerID(userID)
	if err != nil {
		log.Errorf("failed to fetch outgoing requests for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	list := &SwapRequestList{
		Incoming: make([]*SwapRequestResponse, len(incoming)),
		Outgoing: make([]*SwapRequestResponse, len(outgoing)),
	}
	for i, swap := range incoming {
		list.Incoming[i] = toSwapRequestResponse(swap)
	}
	for i, swap := range outgoing {
		list.Outgoing[i] = toSwapRequestResponse(swap)
	}
	return list, nil
}

func mapSwapError(err error, requestID int) apierror.ErrorResponse {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRequestNotPending):
		return apierror.RequestNotPendingError
	case errors.Is(err, repository.ErrStaleSwap):
		return apierror.SwapConflictError
	default:
		log.Errorf("failed to resolve swap request %d: %v", requestID, err)
		return apierror.InternalServerError
	}
}

func toSwapRequestResponse(swap *entity.SwapRequest) *SwapRequestResponse {
	resp := &SwapRequestResponse{
		ID:           swap.ID,
		ProposerID:   swap.ProposerID,
		ResponderID:  swap.ResponderID,
		MyEventID:    swap.MyEventID,
		TheirEventID: swap.TheirEventID,
		Status:       swap.Status,
		CreatedAt:    utils.FormatEpoch(swap.CreatedAt),
	}

	if swap.MyEvent.ID != 0 {
		resp.MyEvent = toEventResponse(&swap.MyEvent)
	}
	if swap.TheirEvent.ID != 0 {
		resp.TheirEvent = toEventResponse(&swap.TheirEvent)
	}
	if swap.Proposer.ID != 0 {
		resp.Proposer = &SlotOwner{ID: swap.Proposer.ID, Name: swap.Proposer.Name}
	}
	if swap.Responder.ID != 0 {
		resp.Responder = &SlotOwner{ID: swap.Responder.ID, Name: swap.Responder.Name}
	}
	return resp
}
