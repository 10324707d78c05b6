package model

import "time"

// Product families sold through the order flow.
const (
	ProductVip       = "vip"
	ProductSvip      = "svip"
	ProductGoldCoin  = "gold_coin"
	ProductTranslate = "translate"
)

// Payment methods.
const (
	PayMethodPaypal = "paypal"
	PayMethodCard   = "card"
)

// Order status. Pending is the only non-terminal state; an order leaves
// it at most once.
const (
	OrderStatusPending int8 = 0
	OrderStatusPaid    int8 = 1
	OrderStatusFailed  int8 = 2
)

type Account struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Name      string `gorm:"size:64;not null"`
	CreatedAt time.Time
}

// Order covers all product families in one table. Only the payload
// columns belonging to ProductType are set; the rest stay zero.
type Order struct {
	OrderNo         string `gorm:"primaryKey;size:64;not null"`
	BuyerUserID     string `gorm:"size:64;index;not null"`
	BuyerName       string `gorm:"size:64"`
	RecipientUserID string `gorm:"size:64;index;not null"` // may differ from buyer (gifting)
	ProductType     string `gorm:"size:16;index;not null"`

	VipLevel       int32
	Months         int32
	GoldCoins      int64
	BonusGoldCoins int64
	Characters     int64

	Amount    string `gorm:"size:32;not null"` // decimal string, e.g. "9.99"
	PayMethod string `gorm:"size:16;not null"`
	Status    int8   `gorm:"index;not null"`

	// Provider confirmation id, recorded when the order settles. The
	// unique index doubles as the idempotency guard against a second
	// settlement with the same confirmation.
	ConfirmationID *string `gorm:"size:64;uniqueIndex"`
	PayTime        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	FriendRequestPending  int8 = 0
	FriendRequestAccepted int8 = 1
	FriendRequestRejected int8 = 2
)

type FriendRequest struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	FromUserID   string `gorm:"size:64;index;not null"`
	FromUserName string `gorm:"size:64"`
	ToUserID     string `gorm:"size:64;index;not null"`
	Status       int8   `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
