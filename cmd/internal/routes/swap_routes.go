package routes

import (
	"slotswap/cmd/internal/service"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type SwapService interface {
	GetSwappableSlots(userID int) ([]*service.SwappableSlot, apierror.ErrorResponse)
	CreateSwapRequest(req *service.SwapProposalRequest, userID int) (*service.SwapRequestResponse, apierror.ErrorResponse)
	Respond(requestID int, accept bool, userID int) (*service.SwapStatusResponse, apierror.ErrorResponse)
	GetRequests(userID int) (*service.SwapRequestList, apierror.ErrorResponse)
}

type DefaultSwapRoute struct {
	SwapService SwapService
}

func NewSwapDefault(swapService SwapService) *DefaultSwapRoute {
	return &DefaultSwapRoute{SwapService: swapService}
}

func (s *DefaultSwapRoute) GetSwappableSlots(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	slots, apierr := s.SwapService.GetSwappableSlots(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, slots)
}

func (s *DefaultSwapRoute) CreateSwapRequest(c echo.Context) error {
	var req service.SwapProposalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	swap, apierr := s.SwapService.CreateSwapRequest(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, swap)
}

func (s *DefaultSwapRoute) RespondSwapRequest(c echo.Context) error {
	requestID, apierr := parseIDParam(c, "requestId")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.SwapResponseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	resp, apierr := s.SwapService.Respond(requestID, req.Accept, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *DefaultSwapRoute) GetRequests(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	requests, apierr := s.SwapService.GetRequests(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, requests)
}
