package handler

import (
	"net/http"

	"chat-billing/internal/dto"
	"chat-billing/internal/service"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	id, err := h.accountService.CreateAccount(ctx, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"id": id,
	})
}
