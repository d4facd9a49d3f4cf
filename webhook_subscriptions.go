package lsbx

import (
	"context"

	"github.com/goliatone/go-lsbx/webhooks"
)

// Webhook is a registered webhook subscription.
type Webhook struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	EventScopes []string `json:"event_scopes"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`

	Raw map[string]any `json:"-"`
}

// UpdateWebhookRequest carries partial subscription changes; empty
// fields are left out of the request.
type UpdateWebhookRequest struct {
	URL           string   `json:"url,omitempty"`
	EventScopes   []string `json:"event_scopes,omitempty"`
	SigningSecret string   `json:"signing_secret,omitempty"`
}

// WebhooksResource manages webhook subscriptions and delegates payload
// verification and parsing to the webhooks package.
type WebhooksResource struct {
	client *Client
}

// Create registers a webhook endpoint for the given event scopes. The
// signing secret keys the HMAC digest on every delivery.
func (r *WebhooksResource) Create(ctx context.Context, url string, eventScopes []string, signingSecret string) (Webhook, error) {
	payload := map[string]any{
		"url":            url,
		"event_scopes":   eventScopes,
		"signing_secret": signingSecret,
	}
	envelope, err := r.client.Post(ctx, "webhook/create", payload, nil)
	if err != nil {
		return Webhook{}, err
	}
	webhook := fromRawMap[Webhook](envelope.Data())
	webhook.Raw = envelope.Data()
	return webhook, nil
}

// List returns every registered webhook. The API answers either with
// an array or an object wrapping a webhooks array.
func (r *WebhooksResource) List(ctx context.Context) ([]Webhook, error) {
	envelope, err := r.client.Get(ctx, "webhook/list", nil)
	if err != nil {
		return nil, err
	}
	items := envelope.List()
	if items == nil {
		if nested, ok := envelope.Data()["webhooks"].([]any); ok {
			items = nested
		}
	}
	result := make([]Webhook, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		webhook := fromRawMap[Webhook](raw)
		webhook.Raw = raw
		result = append(result, webhook)
	}
	return result, nil
}

// EventScopes lists the scopes the API can deliver.
func (r *WebhooksResource) EventScopes(ctx context.Context) ([]string, error) {
	envelope, err := r.client.Get(ctx, "webhook/list/events", nil)
	if err != nil {
		return nil, err
	}
	items, _ := envelope.Data()["event_scopes"].([]any)
	scopes := make([]string, 0, len(items))
	for _, item := range items {
		if scope, ok := item.(string); ok {
			scopes = append(scopes, scope)
		}
	}
	return scopes, nil
}

// Update applies partial changes to a subscription.
func (r *WebhooksResource) Update(ctx context.Context, webhookID string, request UpdateWebhookRequest) (Webhook, error) {
	envelope, err := r.client.Patch(ctx, "webhook/"+webhookID, request)
	if err != nil {
		return Webhook{}, err
	}
	webhook := fromRawMap[Webhook](envelope.Data())
	webhook.Raw = envelope.Data()
	return webhook, nil
}

// Delete removes a subscription.
func (r *WebhooksResource) Delete(ctx context.Context, webhookID string) (bool, error) {
	envelope, err := r.client.Delete(ctx, "webhook/"+webhookID, nil)
	if err != nil {
		return false, err
	}
	return envelope.IsSuccessful(), nil
}

// VerifySignature checks a delivery against the signing secret.
func (r *WebhooksResource) VerifySignature(payload []byte, signature, secret string) bool {
	return webhooks.VerifySignature(payload, signature, secret)
}

// ParseEvent decodes a single delivery payload.
func (r *WebhooksResource) ParseEvent(payload []byte) webhooks.Event {
	return webhooks.ParseEvent(payload)
}

// ParseEvents decodes a single or batch delivery payload.
func (r *WebhooksResource) ParseEvents(payload []byte) []webhooks.Event {
	return webhooks.ParseEvents(payload)
}
