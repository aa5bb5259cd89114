package models

// PushSubscription is a browser push endpoint registered by a consumer.
// Subscriptions are deduplicated by endpoint.
type PushSubscription struct {
	Endpoint string   `json:"endpoint"`
	Keys     PushKeys `json:"keys"`
}

type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushPayload is the notification body sent to every subscription.
type PushPayload struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	Symbol          string   `json:"symbol"`
	Action          Action   `json:"action"`
	Quantity        int      `json:"quantity"`
	PositionPercent float64  `json:"position_percent"`
	EntryPrice      float64  `json:"entry_price"`
	TakeProfitPrice *float64 `json:"take_profit_price"`
	StopLossPrice   *float64 `json:"stop_loss_price"`
}
