package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-billing/internal/dto"
	"chat-billing/internal/errs"
	"chat-billing/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "server-test-secret"

// stubPaymentService returns canned results so the test can focus on
// routing, auth, and the error-to-HTTP mapping.
type stubPaymentService struct {
	initializeErr error
	completeErr   error
	statusErr     error
}

func (s *stubPaymentService) InitializePayment(ctx context.Context, buyerID string, req *dto.InitializePaymentRequest) (string, error) {
	if s.initializeErr != nil {
		return "", s.initializeErr
	}
	return "20250101000000123456", nil
}

func (s *stubPaymentService) CompletePayment(ctx context.Context, req *dto.CompletePaymentRequest) (*dto.VerificationResult, error) {
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	return &dto.VerificationResult{Verified: true, Amount: req.ExpectedAmount}, nil
}

func (s *stubPaymentService) GetOrderStatus(ctx context.Context, orderNo, productType string) (*dto.OrderStatusResponse, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &dto.OrderStatusResponse{OrderNo: orderNo, Status: 1, Amount: "9.99"}, nil
}

type stubFriendService struct{}

func (s *stubFriendService) SendRequest(ctx context.Context, fromUserID, fromUserName, toUserID string) (string, error) {
	return "req-1", nil
}

func (s *stubFriendService) ListPending(ctx context.Context, userID string, page, pageSize int) (*dto.FriendRequestListResponse, error) {
	return &dto.FriendRequestListResponse{
		Requests:   []*dto.FriendRequestItem{},
		Pagination: dto.Pagination{Total: 0, Page: 1, PageSize: 20},
	}, nil
}

func (s *stubFriendService) Resolve(ctx context.Context, userID, requestID string, accept bool) error {
	return nil
}

type stubAccountService struct{}

func (s *stubAccountService) CreateAccount(ctx context.Context, name string) (string, error) {
	return "acc-1", nil
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	return &model.Account{ID: id}, nil
}

func bearer(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func doRequest(t *testing.T, payments *stubPaymentService, method, target, body, auth string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(payments, &stubFriendService{}, &stubAccountService{}, testSecret)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthNoAuth(t *testing.T) {
	rec := doRequest(t, &stubPaymentService{}, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPaymentsRequireAuth(t *testing.T) {
	rec := doRequest(t, &stubPaymentService{}, http.MethodPost, "/api/payments/initialize", `{}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestInitializePaymentOK(t *testing.T) {
	body := `{"amount":"9.99","productType":"gold_coin","productDetails":{"goldCoin":500}}`
	rec := doRequest(t, &stubPaymentService{}, http.MethodPost, "/api/payments/initialize", body, bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["orderNo"] == "" {
		t.Errorf("body = %v", resp)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errs.NotFound("order not found"), http.StatusNotFound, errs.CodeNotFound},
		{"invalid state", errs.InvalidState("order is not pending"), http.StatusConflict, errs.CodeInvalidState},
		{"payment failed", errs.PaymentFailed("provider rejected"), http.StatusPaymentRequired, errs.CodePaymentFailed},
		{"internal", errs.Internal("persist order", context.DeadlineExceeded), http.StatusInternalServerError, errs.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payments := &stubPaymentService{completeErr: tc.err}
			body := `{"orderNo":"ord-1","paypalOrderId":"conf-1","productType":"gold_coin","expectedAmount":"9.99"}`
			rec := doRequest(t, payments, http.MethodPost, "/api/payments/complete", body, bearer(t))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			resp := decodeBody(t, rec)
			if resp["code"] != tc.wantCode {
				t.Errorf("code = %v, want %s", resp["code"], tc.wantCode)
			}
		})
	}
}

func TestInternalErrorBodyIsOpaque(t *testing.T) {
	payments := &stubPaymentService{statusErr: errs.Internal("load order", context.DeadlineExceeded)}
	rec := doRequest(t, payments, http.MethodGet, "/api/payments/orders/ord-1", "", bearer(t))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Error("internal error details leaked to the client")
	}
}

func TestCompletePaymentRequiresIdentifiers(t *testing.T) {
	rec := doRequest(t, &stubPaymentService{}, http.MethodPost, "/api/payments/complete", `{"orderNo":""}`, bearer(t))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestFriendRequestRoutes(t *testing.T) {
	rec := doRequest(t, &stubPaymentService{}, http.MethodGet, "/api/friend-requests?page=1&page_size=20", "", bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	rec = doRequest(t, &stubPaymentService{}, http.MethodPost, "/api/friend-requests/req-1/accept", "", bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("accept status = %d", rec.Code)
	}

	rec = doRequest(t, &stubPaymentService{}, http.MethodPost, "/api/friend-requests/req-1/reject", "", bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("reject status = %d", rec.Code)
	}

	rec = doRequest(t, &stubPaymentService{}, http.MethodPost, "/api/friend-requests", `{"toUserId":"user-2"}`, bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("send status = %d", rec.Code)
	}
}
