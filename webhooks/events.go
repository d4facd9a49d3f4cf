package webhooks

import (
	"encoding/json"
	"strings"
)

// Event scopes a webhook subscription can cover.
const (
	ScopeAccountDeposit             = "account.deposit"
	ScopeAccountDepositNotice       = "account.deposit.notice"
	ScopeAccountDepositStatus       = "account.deposit.status"
	ScopeAccountDepositTransactions = "account.deposit.transactions"
	ScopeCustomer                   = "customer"
)

// Actions reported by upstream events.
const (
	ActionCreated = "CREATED"
	ActionUpdated = "UPDATED"
	ActionDeleted = "DELETED"
)

// Event is one webhook notification. Raw holds the full decoded payload
// so callers can reach fields the typed view does not cover.
type Event struct {
	EventID          string `json:"event_id"`
	EventDate        string `json:"event_date"`
	EventScope       string `json:"event_scope"`
	EventCode        string `json:"event_code"`
	EventDescription string `json:"event_description"`
	Action           string `json:"action"`
	AccountID        string `json:"account_id"`
	CustomerID       string `json:"customer_id"`

	Raw map[string]any `json:"-"`
}

func (e Event) IsCreated() bool { return strings.EqualFold(e.Action, ActionCreated) }
func (e Event) IsUpdated() bool { return strings.EqualFold(e.Action, ActionUpdated) }
func (e Event) IsDeleted() bool { return strings.EqualFold(e.Action, ActionDeleted) }

// ParseEvent decodes a single event payload. A payload that is not
// valid JSON, or not a JSON object, yields the zero Event rather than
// an error; deliveries are never rejected at the parse step.
func ParseEvent(payload []byte) Event {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Event{}
	}
	return eventFromRaw(raw)
}

// ParseEvents decodes either shape the API delivers: an object with a
// top-level event_id becomes a one-element slice, a JSON array becomes
// one Event per element in delivery order. Anything else yields nil.
func ParseEvents(payload []byte) []Event {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "[") {
		var items []map[string]any
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil
		}
		events := make([]Event, 0, len(items))
		for _, item := range items {
			events = append(events, eventFromRaw(item))
		}
		return events
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil
	}
	if _, ok := raw["event_id"]; !ok {
		return nil
	}
	return []Event{eventFromRaw(raw)}
}

func eventFromRaw(raw map[string]any) Event {
	if raw == nil {
		return Event{}
	}
	event := Event{Raw: raw}
	event.EventID = rawString(raw, "event_id")
	event.EventDate = rawString(raw, "event_date")
	event.EventScope = rawString(raw, "event_scope")
	event.EventCode = rawString(raw, "event_code")
	event.EventDescription = rawString(raw, "event_description")
	event.Action = rawString(raw, "action")
	event.AccountID = rawString(raw, "account_id")
	event.CustomerID = rawString(raw, "customer_id")
	return event
}

func rawString(raw map[string]any, key string) string {
	value, _ := raw[key].(string)
	return value
}
