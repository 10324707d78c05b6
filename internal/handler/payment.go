package handler

import (
	"net/http"

	"chat-billing/internal/dto"
	"chat-billing/internal/middleware"
	"chat-billing/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) InitializePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.InitializePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	orderNo, err := h.paymentService.InitializePayment(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.InitializePaymentResponse{
		Success: true,
		OrderNo: orderNo,
	})
}

func (h *PaymentHandler) CompletePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CompletePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderNo == "" || req.ConfirmationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderNo and paypalOrderId are required")
	}

	result, err := h.paymentService.CompletePayment(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CompletePaymentResponse{
		Success:            true,
		VerificationResult: result,
	})
}

func (h *PaymentHandler) GetOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderNo := c.Param("orderNo")
	productType := c.QueryParam("product_type")

	status, err := h.paymentService.GetOrderStatus(ctx, orderNo, productType)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, status)
}
