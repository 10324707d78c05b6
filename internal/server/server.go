package server

import (
	"errors"
	"net/http"

	"chat-billing/internal/errs"
	"chat-billing/internal/handler"
	"chat-billing/internal/middleware"
	"chat-billing/internal/service"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	jwtSecret      string
	paymentHandler *handler.PaymentHandler
	friendHandler  *handler.FriendHandler
	accountHandler *handler.AccountHandler
}

func NewServer(
	paymentService service.PaymentService,
	friendService service.FriendService,
	accountService service.AccountService,
	jwtSecret string,
) *Server {
	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.HTTPErrorHandler = errorHandler

	s := &Server{
		echo:           e,
		jwtSecret:      jwtSecret,
		paymentHandler: handler.NewPaymentHandler(paymentService),
		friendHandler:  handler.NewFriendHandler(friendService),
		accountHandler: handler.NewAccountHandler(accountService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/accounts", s.accountHandler.CreateAccount)

	auth := api.Group("", middleware.AuthMiddleware(s.jwtSecret))

	// -------- payments --------
	auth.POST("/payments/initialize", s.paymentHandler.InitializePayment)
	auth.POST("/payments/complete", s.paymentHandler.CompletePayment)
	auth.GET("/payments/orders/:orderNo", s.paymentHandler.GetOrderStatus)

	// -------- friend requests --------
	auth.POST("/friend-requests", s.friendHandler.SendRequest)
	auth.GET("/friend-requests", s.friendHandler.ListPending)
	auth.POST("/friend-requests/:id/accept", s.friendHandler.Accept)
	auth.POST("/friend-requests/:id/reject", s.friendHandler.Reject)
}

// errorHandler maps the service error taxonomy onto HTTP statuses and a
// JSON body clients can display.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code := "BAD_REQUEST"
		if httpErr.Code == http.StatusUnauthorized {
			code = "UNAUTHORIZED"
		}
		_ = c.JSON(httpErr.Code, map[string]any{
			"code":    code,
			"message": httpErr.Message,
		})
		return
	}

	code := errs.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errs.CodeNotFound:
		status = http.StatusNotFound
	case errs.CodeInvalidState:
		status = http.StatusConflict
	case errs.CodePaymentFailed:
		status = http.StatusPaymentRequired
	}

	message := err.Error()
	if code == errs.CodeInternal {
		// do not leak storage internals to clients
		message = "internal error"
	}

	_ = c.JSON(status, map[string]any{
		"code":    code,
		"message": message,
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
