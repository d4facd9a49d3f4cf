package lsbx

import (
	"context"
	"strings"
)

// Transfer direction and wire type codes.
const (
	TransferTypeDebit  = "DEBIT"
	TransferTypeCredit = "CREDIT"

	WireTypeDomestic = "DOMESTIC"
)

// Transfer is the common response shape for ACH, book, and wire
// movements.
type Transfer struct {
	ID            string  `json:"id"`
	TransferID    string  `json:"transfer_id"`
	AccountID     string  `json:"account_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	EffectiveDate string  `json:"effective_date"`
	Description   string  `json:"description"`
	EntityID      string  `json:"entity_id"`
	RecipientName string  `json:"recipient_name"`

	Raw map[string]any `json:"-"`
}

// Identifier returns the transfer id, falling back to the alternate
// transfer_id key some endpoints use.
func (t Transfer) Identifier() string {
	if t.ID != "" {
		return t.ID
	}
	return t.TransferID
}

func (t Transfer) IsPending() bool   { return strings.EqualFold(t.Status, "PENDING") }
func (t Transfer) IsCompleted() bool { return strings.EqualFold(t.Status, "COMPLETED") }
func (t Transfer) IsDebit() bool     { return strings.EqualFold(t.Type, TransferTypeDebit) }
func (t Transfer) IsCredit() bool    { return strings.EqualFold(t.Type, TransferTypeCredit) }

// CreateACHTransferRequest moves funds between an account and an
// external entity. Descriptions are sanitized before dispatch.
type CreateACHTransferRequest struct {
	AccountID           string
	EntityID            string
	Type                string
	Amount              float64
	Description         string
	SameDayACH          bool
	ExternalDescription string
}

func (r CreateACHTransferRequest) payload() map[string]any {
	payload := map[string]any{
		"account_id":   r.AccountID,
		"entity_id":    r.EntityID,
		"type":         r.Type,
		"amount":       r.Amount,
		"description":  SanitizeDescription(r.Description, MaxACHDescriptionLen),
		"same_day_ach": r.SameDayACH,
	}
	if r.ExternalDescription != "" {
		payload["external_description"] = SanitizeDescription(r.ExternalDescription, MaxACHExternalDescriptionLen)
	}
	return payload
}

// WireRecipient names the beneficiary of a wire. Set BusinessName for
// organizations, FirstName and LastName for individuals.
type WireRecipient struct {
	BusinessName string
	FirstName    string
	LastName     string
	Address      Address
}

func (r WireRecipient) payload() map[string]any {
	details := map[string]any{}
	if r.BusinessName != "" {
		details["name"] = r.BusinessName
	}
	if r.FirstName != "" {
		details["first_name"] = r.FirstName
	}
	if r.LastName != "" {
		details["last_name"] = r.LastName
	}
	details["address"] = r.Address.wireMap()
	return details
}

// CreateWireTransferRequest sends a domestic wire. EffectiveDate must
// be today or later, formatted YYYY-MM-DD.
type CreateWireTransferRequest struct {
	AccountID           string
	EntityID            string
	Amount              float64
	EffectiveDate       string
	Recipient           WireRecipient
	Description         string
	ExternalDescription string
	FboAccountOverride  bool
}

func (r CreateWireTransferRequest) payload() map[string]any {
	wireDetails := map[string]any{
		"account_id":           r.AccountID,
		"entity_id":            r.EntityID,
		"fbo_account_override": r.FboAccountOverride,
		"amount":               r.Amount,
		"effective_date":       r.EffectiveDate,
		"recipient_details":    r.Recipient.payload(),
	}
	if r.Description != "" {
		wireDetails["description"] = SanitizeDescription(r.Description, MaxWireDescriptionLen)
	}
	if r.ExternalDescription != "" {
		wireDetails["external_description"] = SanitizeDescription(r.ExternalDescription, MaxWireDescriptionLen)
	}
	return map[string]any{
		"type":         WireTypeDomestic,
		"wire_details": wireDetails,
	}
}

// TransfersResource groups the money movement operations.
type TransfersResource struct {
	client *Client
}

// CreateACH submits an ACH transfer. Pass idempotencyKey "" to have
// one generated.
func (r *TransfersResource) CreateACH(ctx context.Context, request CreateACHTransferRequest, idempotencyKey string) (Transfer, error) {
	envelope, err := r.client.Post(ctx, "transfers/ach", request.payload(), idempotencyHeaders(idempotencyKey))
	if err != nil {
		return Transfer{}, err
	}
	transfer := fromRawMap[Transfer](envelope.Data())
	transfer.Raw = envelope.Data()
	return transfer, nil
}

// Debit pulls funds from an external account.
func (r *TransfersResource) Debit(ctx context.Context, accountID, entityID string, amount float64, description string, sameDayACH bool, idempotencyKey string) (Transfer, error) {
	return r.CreateACH(ctx, CreateACHTransferRequest{
		AccountID:   accountID,
		EntityID:    entityID,
		Type:        TransferTypeDebit,
		Amount:      amount,
		Description: description,
		SameDayACH:  sameDayACH,
	}, idempotencyKey)
}

// Credit pushes funds to an external account.
func (r *TransfersResource) Credit(ctx context.Context, accountID, entityID string, amount float64, description string, sameDayACH bool, idempotencyKey string) (Transfer, error) {
	return r.CreateACH(ctx, CreateACHTransferRequest{
		AccountID:   accountID,
		EntityID:    entityID,
		Type:        TransferTypeCredit,
		Amount:      amount,
		Description: description,
		SameDayACH:  sameDayACH,
	}, idempotencyKey)
}

// PendingACH lists the ACH transfers still pending on an account.
func (r *TransfersResource) PendingACH(ctx context.Context, accountID string) ([]Transfer, error) {
	envelope, err := r.client.Get(ctx, "transfers/ach/"+accountID, nil)
	if err != nil {
		return nil, err
	}
	return transfersFromAny(envelope.List()), nil
}

// CancelACH cancels a pending transfer. The API takes the transfer and
// account ids in the request body.
func (r *TransfersResource) CancelACH(ctx context.Context, transferID, accountID, idempotencyKey string) (bool, error) {
	payload := map[string]any{
		"id":         transferID,
		"account_id": accountID,
	}
	envelope, err := r.client.Request(ctx, "DELETE", "transfers/ach", payload, idempotencyHeaders(idempotencyKey), nil)
	if err != nil {
		return false, err
	}
	return envelope.IsSuccessful(), nil
}

// CreateBook moves funds between two internal accounts.
func (r *TransfersResource) CreateBook(ctx context.Context, fromAccountID, toAccountID string, amount float64, description, idempotencyKey string) (Transfer, error) {
	payload := map[string]any{
		"from_account_id": fromAccountID,
		"to_account_id":   toAccountID,
		"amount":          amount,
		"description":     description,
	}
	envelope, err := r.client.Post(ctx, "transfers/book", payload, idempotencyHeaders(idempotencyKey))
	if err != nil {
		return Transfer{}, err
	}
	transfer := fromRawMap[Transfer](envelope.Data())
	transfer.Raw = envelope.Data()
	return transfer, nil
}

// InternalTransfer is an alias for CreateBook.
func (r *TransfersResource) InternalTransfer(ctx context.Context, fromAccountID, toAccountID string, amount float64, description, idempotencyKey string) (Transfer, error) {
	return r.CreateBook(ctx, fromAccountID, toAccountID, amount, description, idempotencyKey)
}

// CreateWire sends a domestic wire. The sandbox is the only
// environment that accepts wires.
func (r *TransfersResource) CreateWire(ctx context.Context, request CreateWireTransferRequest, idempotencyKey string) (Transfer, error) {
	envelope, err := r.client.Post(ctx, "transfers/wire", request.payload(), idempotencyHeaders(idempotencyKey))
	if err != nil {
		return Transfer{}, err
	}
	transfer := fromRawMap[Transfer](envelope.Data())
	transfer.Raw = envelope.Data()
	return transfer, nil
}

// PendingWire lists the wires still pending on an account.
func (r *TransfersResource) PendingWire(ctx context.Context, accountID string) ([]Transfer, error) {
	envelope, err := r.client.Get(ctx, "transfers/wire/"+accountID, nil)
	if err != nil {
		return nil, err
	}
	return transfersFromAny(envelope.List()), nil
}

func transfersFromAny(items []any) []Transfer {
	transfers := make([]Transfer, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		transfer := fromRawMap[Transfer](raw)
		transfer.Raw = raw
		transfers = append(transfers, transfer)
	}
	return transfers
}
