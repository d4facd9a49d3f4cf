package lsbx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Entity account types. The API spells these in title case, unlike the
// account product codes.
const (
	EntityAccountTypeChecking = "Checking"
	EntityAccountTypeSavings  = "Savings"
)

// Entity is an external account a customer can move funds against.
type Entity struct {
	ID                       string `json:"id"`
	CustomerID               string `json:"customer_id"`
	AccountNumber            string `json:"account_number"`
	RoutingNumber            string `json:"routing_number"`
	AccountType              string `json:"account_type"`
	AccountHolderName        string `json:"account_holder_name"`
	IsOrganization           bool   `json:"is_organization"`
	Description              string `json:"description"`
	CustomString             string `json:"custom_string"`
	FinancialInstitutionName string `json:"financial_institution_name"`

	Raw map[string]any `json:"-"`
}

func (e Entity) IsChecking() bool {
	return strings.EqualFold(e.AccountType, EntityAccountTypeChecking)
}

func (e Entity) IsSavings() bool {
	return strings.EqualFold(e.AccountType, EntityAccountTypeSavings)
}

// CreateEntityRequest registers an external account. AccountType
// defaults to Checking; CustomString defaults to a hash of the account
// and routing numbers so the same external account always maps to the
// same value.
type CreateEntityRequest struct {
	AccountNumber     string
	RoutingNumber     string
	AccountHolderName string
	AccountType       string
	Description       string
	CustomString      string
}

func (r CreateEntityRequest) payload() map[string]any {
	accountType := r.AccountType
	if accountType == "" {
		accountType = EntityAccountTypeChecking
	}
	customString := r.CustomString
	if customString == "" {
		sum := sha256.Sum256([]byte(r.AccountNumber + "-" + r.RoutingNumber))
		customString = hex.EncodeToString(sum[:])
	}
	payload := map[string]any{
		"account_number":      r.AccountNumber,
		"routing_number":      r.RoutingNumber,
		"account_type":        accountType,
		"account_holder_name": SanitizeDescription(r.AccountHolderName, MaxAccountHolderNameLen),
		"custom_string":       customString,
	}
	if r.Description != "" {
		payload["description"] = r.Description
	}
	return payload
}

// UpdateEntityRequest carries partial entity changes; empty fields are
// left out of the request.
type UpdateEntityRequest struct {
	AccountNumber     string `json:"account_number,omitempty"`
	RoutingNumber     string `json:"routing_number,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	AccountType       string `json:"account_type,omitempty"`
	Description       string `json:"description,omitempty"`
}

// EntitiesResource groups the external account operations.
type EntitiesResource struct {
	client *Client
}

// Create registers an external account. Pass idempotencyKey "" to
// have one generated.
func (r *EntitiesResource) Create(ctx context.Context, request CreateEntityRequest, idempotencyKey string) (Entity, error) {
	envelope, err := r.client.Post(ctx, "entities", request.payload(), idempotencyHeaders(idempotencyKey))
	if err != nil {
		return Entity{}, err
	}
	entity := fromRawMap[Entity](envelope.Data())
	entity.Raw = envelope.Data()
	return entity, nil
}

// List pages through registered entities.
func (r *EntitiesResource) List(ctx context.Context, pageNumber, recordsPerPage int) ([]Entity, error) {
	if recordsPerPage <= 0 {
		recordsPerPage = 10
	}
	envelope, err := r.client.Get(ctx, "entities", map[string]string{
		"page_number":      strconv.Itoa(pageNumber),
		"records_per_page": strconv.Itoa(recordsPerPage),
	})
	if err != nil {
		return nil, err
	}
	return entitiesFromEnvelopeShapes(envelope.List(), envelope.Data()), nil
}

// Search matches entities by account and routing number. The API
// answers with an array, an object wrapping an entities array, or a
// single entity; all three decode to a slice.
func (r *EntitiesResource) Search(ctx context.Context, accountNumber, routingNumber string) ([]Entity, error) {
	payload := map[string]any{}
	if accountNumber != "" {
		payload["account_number"] = accountNumber
	}
	if routingNumber != "" {
		payload["routing_number"] = routingNumber
	}
	envelope, err := r.client.Post(ctx, "entities/search", payload, nil)
	if err != nil {
		return nil, err
	}
	list := envelope.List()
	data := envelope.Data()
	entities := entitiesFromEnvelopeShapes(list, data)
	if entities == nil && data != nil {
		if _, ok := data["id"]; ok {
			entity := fromRawMap[Entity](data)
			entity.Raw = data
			entities = []Entity{entity}
		}
	}
	return entities, nil
}

// FindByAccountAndRouting returns the first entity matching the pair,
// or nil when none exists.
func (r *EntitiesResource) FindByAccountAndRouting(ctx context.Context, accountNumber, routingNumber string) (*Entity, error) {
	entities, err := r.Search(ctx, accountNumber, routingNumber)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return &entities[0], nil
}

// Update applies partial changes to an entity.
func (r *EntitiesResource) Update(ctx context.Context, entityID string, request UpdateEntityRequest) (Entity, error) {
	envelope, err := r.client.Patch(ctx, "entities/"+entityID, request)
	if err != nil {
		return Entity{}, err
	}
	entity := fromRawMap[Entity](envelope.Data())
	entity.Raw = envelope.Data()
	return entity, nil
}

// Delete removes an entity.
func (r *EntitiesResource) Delete(ctx context.Context, entityID string) (bool, error) {
	envelope, err := r.client.Delete(ctx, "entities/"+entityID, nil)
	if err != nil {
		return false, err
	}
	return envelope.IsSuccessful(), nil
}

func entitiesFromEnvelopeShapes(list []any, data map[string]any) []Entity {
	if list != nil {
		return entitiesFromAny(list)
	}
	if nested, ok := data["entities"].([]any); ok {
		return entitiesFromAny(nested)
	}
	return nil
}

func entitiesFromAny(items []any) []Entity {
	entities := make([]Entity, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entity := fromRawMap[Entity](raw)
		entity.Raw = raw
		entities = append(entities, entity)
	}
	return entities
}
