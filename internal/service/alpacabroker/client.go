// Package alpacabroker submits market orders to Alpaca for tradeable
// signals when auto-trading is enabled.
package alpacabroker

import (
	"context"
	"strings"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/pkg/logger"
)

type Client struct {
	client *alpaca.Client
	log    *logger.Logger
}

func New(apiKey, apiSecret, baseURL string, log *logger.Logger) *Client {
	opts := alpaca.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
	}
	return &Client{client: alpaca.NewClient(opts), log: log}
}

var _ drepo.OrderSink = (*Client)(nil)

// toAlpacaSymbol maps dashed crypto pairs to Alpaca's format: BTC-USD -> BTCUSD.
// Equity symbols pass through unchanged.
func toAlpacaSymbol(symbol string) string {
	if strings.HasSuffix(symbol, "-USD") {
		return strings.ReplaceAll(symbol, "-", "")
	}
	return symbol
}

// Submit places a market order for the signal. Non-tradeable signals are
// skipped. A rejected or failed order is logged and reported as false; the
// caller treats it as non-fatal.
func (c *Client) Submit(ctx context.Context, sig models.Signal) bool {
	if !sig.Tradeable() {
		return false
	}

	side := alpaca.Buy
	if sig.Action == models.ActionSell {
		side = alpaca.Sell
	}
	qty := decimal.NewFromInt(int64(sig.Quantity))
	req := alpaca.PlaceOrderRequest{
		Symbol:      toAlpacaSymbol(sig.Symbol),
		Qty:         &qty,
		Side:        side,
		Type:        alpaca.Market,
		TimeInForce: alpaca.GTC,
	}

	order, err := c.client.PlaceOrder(req)
	if err != nil {
		c.log.Error("order rejected",
			logger.String("symbol", sig.Symbol),
			logger.String("action", string(sig.Action)),
			logger.Int("qty", sig.Quantity),
			logger.Error(err))
		return false
	}

	c.log.Info("order placed",
		logger.String("symbol", sig.Symbol),
		logger.String("action", string(sig.Action)),
		logger.Int("qty", sig.Quantity),
		logger.String("order_id", order.ID),
		logger.String("status", string(order.Status)))
	return true
}
