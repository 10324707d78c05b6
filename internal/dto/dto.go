package dto

type ProductDetails struct {
	VipLevel     int32 `json:"vipLevel,omitempty"`
	Month        int32 `json:"month,omitempty"`
	GoldCoin     int64 `json:"goldCoin,omitempty"`
	GiveGoldCoin int64 `json:"giveGoldCoin,omitempty"`
	Character    int64 `json:"character,omitempty"`
}

type InitializePaymentRequest struct {
	Amount          string          `json:"amount"`
	ProductType     string          `json:"productType"`
	ProductDetails  *ProductDetails `json:"productDetails"`
	PayMethod       string          `json:"payMethod"`
	RecipientUserID string          `json:"recipientUserId,omitempty"`
}

type InitializePaymentResponse struct {
	Success bool   `json:"success"`
	OrderNo string `json:"orderNo"`
}

type CompletePaymentRequest struct {
	OrderNo        string `json:"orderNo"`
	ConfirmationID string `json:"paypalOrderId"`
	ProductType    string `json:"productType"`
	ExpectedAmount string `json:"expectedAmount"`
}

type VerificationResult struct {
	Verified       bool   `json:"verified"`
	Amount         string `json:"amount"`
	ProviderStatus string `json:"providerStatus,omitempty"`
}

type CompletePaymentResponse struct {
	Success            bool                `json:"success"`
	VerificationResult *VerificationResult `json:"verificationResult"`
}

type OrderStatusResponse struct {
	OrderNo string `json:"orderNo"`
	Status  int8   `json:"status"`
	Amount  string `json:"amount"`
	PayTime string `json:"payTime,omitempty"`
}

type CreateAccountRequest struct {
	Name string `json:"name"`
}

type FriendRequestItem struct {
	ID           string `json:"id"`
	FromUserID   string `json:"fromUserId"`
	FromUserName string `json:"fromUserName"`
	CreatedAt    string `json:"createdAt"`
}

type Pagination struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type FriendRequestListResponse struct {
	Requests   []*FriendRequestItem `json:"requests"`
	Pagination Pagination           `json:"pagination"`
}
