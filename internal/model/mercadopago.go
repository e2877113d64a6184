package model

type PreferenceItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Quantity   int32  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	CurrencyID string `json:"currency_id"`
}

type PreferencePayer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             PreferencePayer  `json:"payer"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          BackURLs         `json:"back_urls"`
	NotificationURL   string           `json:"notification_url"`
}

type PreferenceResult struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type WebhookData struct {
	ID string `json:"id"`
}

type ProviderWebhookEvent struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`   // only "payment" events are acted on
	Action string      `json:"action"` // e.g. payment.created, payment.updated
	Data   WebhookData `json:"data"`
}

type PaymentResource struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	PreferenceID      string          `json:"preference_id"`
	ExternalReference string          `json:"external_reference"`
	TransactionAmount int64           `json:"transaction_amount"`
	Payer             PreferencePayer `json:"payer"`
}
