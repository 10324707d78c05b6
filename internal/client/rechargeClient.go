package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chat-billing/internal/config"
)

// RechargeClient talks to the external recharge service that owns user
// balances. Every call is idempotent on the far side, keyed by order no,
// so retrying after a failure is safe.
type RechargeClient interface {
	AddVip(ctx context.Context, req *AddVipRequest) error
	AddGoldCoins(ctx context.Context, req *AddGoldCoinsRequest) error
	AddTranslationQuota(ctx context.Context, req *AddTranslationQuotaRequest) error
}

type AddVipRequest struct {
	OrderNo        string `json:"order_no"`
	UserID         string `json:"user_id"`
	VipLevel       int32  `json:"vip_level"`
	Months         int32  `json:"months"`
	Amount         string `json:"amount"`
	ConfirmationID string `json:"confirmation_id"`
}

type AddGoldCoinsRequest struct {
	OrderNo        string `json:"order_no"`
	UserID         string `json:"user_id"`
	GoldCoins      int64  `json:"gold_coins"`
	BonusGoldCoins int64  `json:"bonus_gold_coins"`
	Amount         string `json:"amount"`
	ConfirmationID string `json:"confirmation_id"`
}

type AddTranslationQuotaRequest struct {
	OrderNo        string `json:"order_no"`
	UserID         string `json:"user_id"`
	Characters     int64  `json:"characters"`
	Amount         string `json:"amount"`
	ConfirmationID string `json:"confirmation_id"`
}

type rechargeClientImpl struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewRechargeClient(cfg *config.Recharge) RechargeClient {
	return &rechargeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

func (c *rechargeClientImpl) AddVip(ctx context.Context, req *AddVipRequest) error {
	return c.post(ctx, "/internal/recharge/vip", req)
}

func (c *rechargeClientImpl) AddGoldCoins(ctx context.Context, req *AddGoldCoinsRequest) error {
	return c.post(ctx, "/internal/recharge/gold-coins", req)
}

func (c *rechargeClientImpl) AddTranslationQuota(ctx context.Context, req *AddTranslationQuotaRequest) error {
	return c.post(ctx, "/internal/recharge/translation-quota", req)
}

func (c *rechargeClientImpl) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recharge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("recharge error %d: %s", resp.StatusCode, string(b))
	}

	return nil
}
