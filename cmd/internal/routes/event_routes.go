package routes

import (
	"slotswap/cmd/internal/service"
	"slotswap/cmd/internal/utils"
	"slotswap/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type EventService interface {
	GetEvents(userID int) ([]*service.EventResponse, apierror.ErrorResponse)
	CreateEvent(req *service.EventRequest, userID int) (*service.EventResponse, apierror.ErrorResponse)
	UpdateEvent(id int, req *service.EventPatchRequest, userID int) (*service.EventResponse, apierror.ErrorResponse)
	DeleteEvent(id, userID int) apierror.ErrorResponse
}

type DefaultEventRoute struct {
	EventService EventService
}

func NewEventDefault(eventService EventService) *DefaultEventRoute {
	return &DefaultEventRoute{EventService: eventService}
}

func (e *DefaultEventRoute) GetEvents(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	events, apierr := e.EventService.GetEvents(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, events)
}

func (e *DefaultEventRoute) CreateEvent(c echo.Context) error {
	var req service.EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	event, apierr := e.EventService.CreateEvent(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, event)
}

func (e *DefaultEventRoute) UpdateEvent(c echo.Context) error {
	id, apierr := parseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.EventPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	event, apierr := e.EventService.UpdateEvent(id, &req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}

func (e *DefaultEventRoute) DeleteEvent(c echo.Context) error {
	id, apierr := parseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	apierr = e.EventService.DeleteEvent(id, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func parseIDParam(c echo.Context, name string) (int, apierror.ErrorResponse) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "number")
	}
	return id, nil
}
