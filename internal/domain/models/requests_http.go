package models

// Requests for HTTP endpoints. Defined in domain for consistency and reuse.

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

type AnalyzeRequest struct {
	// Optional symbol override; empty means the configured symbol set.
	Symbols []string `json:"symbols" validate:"omitempty,max=32,dive,symbol"`
}
