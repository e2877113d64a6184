package dto

type CreatePaymentRequest struct {
	GiftItemID string `json:"gift_item_id" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	BuyerEmail string `json:"buyer_email" validate:"required,email"`
	BuyerName  string `json:"buyer_name" validate:"required"`
	ReturnURL  string `json:"return_url" validate:"omitempty,url"`
}

type CreatePaymentResponse struct {
	Success      bool   `json:"success"`
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

type PaymentInfo struct {
	Status     string `json:"status"`
	Amount     int64  `json:"amount"`
	BuyerEmail string `json:"buyer_email"`
	BuyerName  string `json:"buyer_name,omitempty"`
}

type GiftItemInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Price         int64  `json:"price,omitempty"`
	Paid          bool   `json:"paid"`
	PaymentStatus string `json:"payment_status"`
	// pay | pending | paid | retry, derived from the latest payment attempt
	Action string `json:"action,omitempty"`
}

type StatusResponse struct {
	Success  bool          `json:"success"`
	Payment  *PaymentInfo  `json:"payment"`
	GiftItem *GiftItemInfo `json:"gift_item"`
}

type CreateGiftRequest struct {
	Name  string `json:"name" validate:"required,max=128"`
	Icon  string `json:"icon" validate:"required,oneof=rings plane house honeymoon dinner toast camera heart"`
	Price int64  `json:"price" validate:"gte=0"`
}

type RSVPRequest struct {
	GuestName  string `json:"guest_name" validate:"required,max=128"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	Attending  *bool  `json:"attending" validate:"required"`
	PartySize  int32  `json:"party_size" validate:"omitempty,gte=1,lte=12"`
	Note       string `json:"note" validate:"max=512"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
