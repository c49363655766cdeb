package receiving

import (
	"context"

	"github.com/mamadbah2/stockroom/pkg/clients/webhook"
)

// WebhookNotifier forwards receipts to a webhook endpoint.
type WebhookNotifier struct {
	client webhook.Client
}

// NewWebhookNotifier adapts a webhook client to the Notifier interface.
func NewWebhookNotifier(client webhook.Client) *WebhookNotifier {
	return &WebhookNotifier{client: client}
}

// NotifyReceipt implements Notifier.
func (n *WebhookNotifier) NotifyReceipt(ctx context.Context, receipt Receipt) error {
	lines := make([]webhook.ReceiptLine, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		lines = append(lines, webhook.ReceiptLine{
			ItemName:         l.ItemName,
			ItemCode:         l.ItemCode,
			QuantityReceived: l.QuantityReceived,
			Created:          l.Created,
		})
	}

	return n.client.SendReceipt(ctx, webhook.ReceiptEvent{
		Event:      webhook.EventReceiptCreated,
		GRNID:      receipt.GRN.ID.Hex(),
		POID:       receipt.GRN.POID,
		QC:         string(receipt.GRN.QC),
		ReceivedAt: receipt.GRN.CreatedAt,
		Lines:      lines,
	})
}
