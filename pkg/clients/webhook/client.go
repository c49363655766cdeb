package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// EventReceiptCreated is the event name sent for every stored goods receipt.
const EventReceiptCreated = "grn.received"

// Client posts receiving events to an external HTTP endpoint.
type Client interface {
	SendReceipt(ctx context.Context, event ReceiptEvent) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client targeting url.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "stockroom-webhook/1").
		SetTimeout(10 * time.Second)

	return &APIClient{httpClient: restyClient, url: url}
}

// ReceiptLine mirrors one applied ledger write.
type ReceiptLine struct {
	ItemName         string `json:"itemName"`
	ItemCode         string `json:"itemCode"`
	QuantityReceived int    `json:"quantityReceived"`
	Created          bool   `json:"created"`
}

// ReceiptEvent is the payload posted for a stored goods receipt.
type ReceiptEvent struct {
	Event      string        `json:"event"`
	GRNID      string        `json:"grnID"`
	POID       string        `json:"poID"`
	QC         string        `json:"QC,omitempty"`
	ReceivedAt time.Time     `json:"receivedAt"`
	Lines      []ReceiptLine `json:"lines"`
}

// errorBody captures a JSON error payload when the receiver returns one.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendReceipt posts the event; any non-2xx answer is an error.
func (c *APIClient) SendReceipt(ctx context.Context, event ReceiptEvent) error {
	if event.Event == "" {
		event.Event = EventReceiptCreated
	}

	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send receipt webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("receipt webhook rejected: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
