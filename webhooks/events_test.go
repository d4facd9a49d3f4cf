package webhooks

import "testing"

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"event_id": "evt-1",
		"event_date": "2024-05-01T10:00:00Z",
		"event_scope": "customer",
		"event_code": "CUSTOMER",
		"event_description": "customer record created",
		"action": "CREATED",
		"customer_id": "cus-9",
		"extra_field": "kept"
	}`)

	event := ParseEvent(payload)
	if event.EventID != "evt-1" {
		t.Fatalf("unexpected event id %q", event.EventID)
	}
	if event.EventScope != ScopeCustomer {
		t.Fatalf("unexpected scope %q", event.EventScope)
	}
	if event.CustomerID != "cus-9" {
		t.Fatalf("unexpected customer id %q", event.CustomerID)
	}
	if !event.IsCreated() {
		t.Fatalf("expected created action")
	}
	if event.Raw["extra_field"] != "kept" {
		t.Fatalf("expected raw payload to keep unmapped fields")
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	event := ParseEvent([]byte(`not json at all`))
	if event.EventID != "" || event.Raw != nil {
		t.Fatalf("expected zero event for invalid payload, got %+v", event)
	}
}

func TestParseEvents_SingleObject(t *testing.T) {
	events := ParseEvents([]byte(`{"event_id":"evt-1","action":"UPDATED"}`))
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if !events[0].IsUpdated() {
		t.Fatalf("expected updated action")
	}
}

func TestParseEvents_Array(t *testing.T) {
	payload := []byte(`[
		{"event_id":"evt-1","action":"CREATED"},
		{"event_id":"evt-2","action":"DELETED"},
		{"event_id":"evt-3","action":"updated"}
	]`)

	events := ParseEvents(payload)
	if len(events) != 3 {
		t.Fatalf("expected three events, got %d", len(events))
	}
	if events[0].EventID != "evt-1" || events[1].EventID != "evt-2" || events[2].EventID != "evt-3" {
		t.Fatalf("expected delivery order preserved: %+v", events)
	}
	if !events[1].IsDeleted() {
		t.Fatalf("expected deleted action on second event")
	}
	if !events[2].IsUpdated() {
		t.Fatalf("action matching is case insensitive")
	}
}

func TestParseEvents_UnrecognizedShapes(t *testing.T) {
	if events := ParseEvents([]byte(`{"message":"no event id"}`)); events != nil {
		t.Fatalf("object without event_id should yield nil, got %+v", events)
	}
	if events := ParseEvents([]byte(`garbage`)); events != nil {
		t.Fatalf("invalid payload should yield nil, got %+v", events)
	}
}
