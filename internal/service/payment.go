package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"chat-billing/internal/client"
	"chat-billing/internal/dto"
	"chat-billing/internal/errs"
	"chat-billing/internal/model"
	"chat-billing/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	InitializePayment(ctx context.Context, buyerID string, req *dto.InitializePaymentRequest) (string, error)
	CompletePayment(ctx context.Context, req *dto.CompletePaymentRequest) (*dto.VerificationResult, error)
	GetOrderStatus(ctx context.Context, orderNo, productType string) (*dto.OrderStatusResponse, error)
}

type paymentServiceImpl struct {
	accountRepo     repository.AccountRepository
	orderRepo       repository.OrderRepository
	paypalClient    client.PaypalClient
	braintreeClient client.BraintreeClient
	rechargeClient  client.RechargeClient
	logger          zerolog.Logger
}

func NewPaymentService(
	accountRepo repository.AccountRepository,
	orderRepo repository.OrderRepository,
	paypalClient client.PaypalClient,
	braintreeClient client.BraintreeClient,
	rechargeClient client.RechargeClient,
	logger zerolog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		accountRepo:     accountRepo,
		orderRepo:       orderRepo,
		paypalClient:    paypalClient,
		braintreeClient: braintreeClient,
		rechargeClient:  rechargeClient,
		logger:          logger,
	}
}

// newOrderNo builds a wall-clock order number with a random suffix.
// Probabilistically unique only; the primary key rejects the rare clash.
func newOrderNo() string {
	return time.Now().Format("20060102150405") + fmt.Sprintf("%06d", rand.IntN(1000000))
}

func (s *paymentServiceImpl) InitializePayment(ctx context.Context, buyerID string, req *dto.InitializePaymentRequest) (string, error) {
	account, err := s.accountRepo.Get(ctx, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("buyer account not found")
		}
		return "", errs.Internal("load buyer account", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return "", errs.PaymentFailed("amount must be a positive decimal string")
	}

	payMethod := req.PayMethod
	if payMethod == "" {
		payMethod = model.PayMethodPaypal
	}
	if payMethod != model.PayMethodPaypal && payMethod != model.PayMethodCard {
		return "", errs.PaymentFailed("unsupported pay method: " + payMethod)
	}

	recipientID := req.RecipientUserID
	if recipientID == "" {
		recipientID = account.ID
	}

	order := &model.Order{
		OrderNo:         newOrderNo(),
		BuyerUserID:     account.ID,
		BuyerName:       account.Name,
		RecipientUserID: recipientID,
		ProductType:     req.ProductType,
		Amount:          req.Amount,
		PayMethod:       payMethod,
		Status:          model.OrderStatusPending,
	}

	details := req.ProductDetails
	if details == nil {
		details = &dto.ProductDetails{}
	}
	switch req.ProductType {
	case model.ProductVip, model.ProductSvip:
		if details.VipLevel <= 0 || details.Month <= 0 {
			return "", errs.PaymentFailed("vip orders require vipLevel and month")
		}
		order.VipLevel = details.VipLevel
		order.Months = details.Month
	case model.ProductGoldCoin:
		if details.GoldCoin <= 0 {
			return "", errs.PaymentFailed("gold coin orders require goldCoin")
		}
		order.GoldCoins = details.GoldCoin
		order.BonusGoldCoins = details.GiveGoldCoin
	case model.ProductTranslate:
		if details.Character <= 0 {
			return "", errs.PaymentFailed("translate orders require character")
		}
		order.Characters = details.Character
	default:
		return "", errs.PaymentFailed("unknown product type: " + req.ProductType)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return "", errs.Internal("persist order", err)
	}

	s.logger.Info().
		Str("order_no", order.OrderNo).
		Str("product_type", order.ProductType).
		Str("amount", order.Amount).
		Msg("order created")

	return order.OrderNo, nil
}

func (s *paymentServiceImpl) CompletePayment(ctx context.Context, req *dto.CompletePaymentRequest) (*dto.VerificationResult, error) {
	order, err := s.orderRepo.FindByOrderNo(ctx, req.OrderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Internal("load order", err)
	}
	if req.ProductType != "" && order.ProductType != req.ProductType {
		return nil, errs.NotFound("order not found for product type")
	}
	if order.Status != model.OrderStatusPending {
		return nil, errs.InvalidState("order is not pending")
	}

	verification, err := s.verify(ctx, order, req.ConfirmationID)
	if err != nil {
		// keep the original error identity so callers can tell provider
		// failures from storage failures
		s.logger.Error().Err(err).
			Str("order_no", order.OrderNo).
			Msg("provider verification errored")
		return nil, err
	}
	if !verification.Verified {
		return nil, errs.PaymentFailed("provider did not confirm the payment")
	}

	confirmed, err := decimal.NewFromString(verification.Amount)
	if err != nil {
		return nil, errs.Internal("parse provider amount", err)
	}
	expected, err := decimal.NewFromString(req.ExpectedAmount)
	if err != nil {
		return nil, errs.PaymentFailed("expectedAmount must be a decimal string")
	}
	ordered, err := decimal.NewFromString(order.Amount)
	if err != nil {
		return nil, errs.Internal("parse stored order amount", err)
	}
	if !confirmed.Equal(expected) || !confirmed.Equal(ordered) {
		return nil, errs.PaymentFailed(fmt.Sprintf(
			"amount mismatch: provider confirmed %s, order is %s", verification.Amount, order.Amount))
	}

	// Claim the order before crediting. Exactly one caller wins the
	// pending->paid flip, so the recharge service is invoked at most
	// once per order even under concurrent completion attempts.
	if err := s.orderRepo.ClaimPaid(ctx, order.OrderNo, req.ConfirmationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.InvalidState("order was settled concurrently")
		}
		return nil, errs.Internal("settle order", err)
	}

	if err := s.credit(ctx, order, verification.Amount, req.ConfirmationID); err != nil {
		// The order is already marked paid; the recharge service is
		// idempotent per order no, so reconciliation can replay this.
		s.logger.Error().Err(err).
			Str("order_no", order.OrderNo).
			Str("confirmation_id", req.ConfirmationID).
			Msg("crediting failed after settlement")
		return nil, err
	}

	s.logger.Info().
		Str("order_no", order.OrderNo).
		Str("confirmation_id", req.ConfirmationID).
		Str("amount", verification.Amount).
		Msg("order settled and credited")

	return &dto.VerificationResult{
		Verified:       true,
		Amount:         verification.Amount,
		ProviderStatus: verification.Status,
	}, nil
}

func (s *paymentServiceImpl) verify(ctx context.Context, order *model.Order, confirmationID string) (*client.VerifyOrderResult, error) {
	switch order.PayMethod {
	case model.PayMethodCard:
		return s.braintreeClient.VerifyTransaction(ctx, confirmationID)
	default:
		return s.paypalClient.VerifyOrder(ctx, confirmationID)
	}
}

func (s *paymentServiceImpl) credit(ctx context.Context, order *model.Order, confirmedAmount, confirmationID string) error {
	switch order.ProductType {
	case model.ProductVip, model.ProductSvip:
		return s.rechargeClient.AddVip(ctx, &client.AddVipRequest{
			OrderNo:        order.OrderNo,
			UserID:         order.RecipientUserID,
			VipLevel:       order.VipLevel,
			Months:         order.Months,
			Amount:         confirmedAmount,
			ConfirmationID: confirmationID,
		})
	case model.ProductGoldCoin:
		return s.rechargeClient.AddGoldCoins(ctx, &client.AddGoldCoinsRequest{
			OrderNo:        order.OrderNo,
			UserID:         order.RecipientUserID,
			GoldCoins:      order.GoldCoins,
			BonusGoldCoins: order.BonusGoldCoins,
			Amount:         confirmedAmount,
			ConfirmationID: confirmationID,
		})
	case model.ProductTranslate:
		return s.rechargeClient.AddTranslationQuota(ctx, &client.AddTranslationQuotaRequest{
			OrderNo:        order.OrderNo,
			UserID:         order.RecipientUserID,
			Characters:     order.Characters,
			Amount:         confirmedAmount,
			ConfirmationID: confirmationID,
		})
	default:
		return fmt.Errorf("no crediting delegate for product type %s", order.ProductType)
	}
}

func (s *paymentServiceImpl) GetOrderStatus(ctx context.Context, orderNo, productType string) (*dto.OrderStatusResponse, error) {
	order, err := s.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Internal("load order", err)
	}
	if productType != "" && order.ProductType != productType {
		return nil, errs.NotFound("order not found for product type")
	}

	resp := &dto.OrderStatusResponse{
		OrderNo: order.OrderNo,
		Status:  order.Status,
		Amount:  order.Amount,
	}
	if order.PayTime != nil {
		resp.PayTime = order.PayTime.Format(time.RFC3339)
	}

	return resp, nil
}
