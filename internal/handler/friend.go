package handler

import (
	"net/http"
	"strconv"

	"chat-billing/internal/middleware"
	"chat-billing/internal/service"

	"github.com/labstack/echo/v4"
)

type FriendHandler struct {
	friendService service.FriendService
}

func NewFriendHandler(friendService service.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

func (h *FriendHandler) SendRequest(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ToUserID     string `json:"toUserId"`
		FromUserName string `json:"fromUserName"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ToUserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "toUserId is required")
	}

	id, err := h.friendService.SendRequest(ctx, middleware.UserID(c), req.FromUserName, req.ToUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (h *FriendHandler) ListPending(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	resp, err := h.friendService.ListPending(ctx, middleware.UserID(c), page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *FriendHandler) Accept(c echo.Context) error {
	return h.resolve(c, true)
}

func (h *FriendHandler) Reject(c echo.Context) error {
	return h.resolve(c, false)
}

func (h *FriendHandler) resolve(c echo.Context, accept bool) error {
	ctx := c.Request().Context()

	requestID := c.Param("id")
	if requestID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing request id")
	}

	if err := h.friendService.Resolve(ctx, middleware.UserID(c), requestID, accept); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
