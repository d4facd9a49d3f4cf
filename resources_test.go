package lsbx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestCustomers_SearchReturnsNilWithoutMatch(t *testing.T) {
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	defer api.close()

	customer, err := api.client(t).Customers().FindByTaxID(context.Background(), "123-45-6789")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if customer != nil {
		t.Fatalf("expected nil customer, got %+v", customer)
	}
}

func TestCustomers_SearchDecodesMatch(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{
			"customer_id": "cus-1",
			"type": "PERSON",
			"person_details": {"first_name": "Ada", "last_name": "Lovelace"}
		}`))
	})
	defer api.close()

	customer, err := api.client(t).Customers().FindByName(context.Background(), "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if customer == nil || customer.CustomerID != "cus-1" {
		t.Fatalf("unexpected customer %+v", customer)
	}
	if !customer.IsPerson() {
		t.Fatalf("expected person customer")
	}
	if customer.PersonDetails == nil || customer.PersonDetails.FirstName != "Ada" {
		t.Fatalf("unexpected person details %+v", customer.PersonDetails)
	}
	if gotBody["first_name"] != "Ada" || gotBody["last_name"] != "Lovelace" {
		t.Fatalf("unexpected search payload %v", gotBody)
	}
	if gotBody["is_organization"] != false {
		t.Fatalf("person search must set is_organization false, got %v", gotBody)
	}
}

func TestCustomers_CreatePersonPayload(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"customer_id":"cus-1"}`))
	})
	defer api.close()

	response, err := api.client(t).Customers().CreatePerson(context.Background(), PersonDetails{
		FirstName: "Ada",
		LastName:  "Lovelace",
		BirthDate: "1815-12-10",
		Address:   Address{Street: "1 Main St", City: "Austin", State: "TX", PostalCode: "78701"},
		Phone:     Phone{Number: "5125550100"},
		TaxID:     "123-45-6789",
		Email:     "ada@example.com",
	}, []CddQuestion{NotPoliticallyExposed()}, "")
	if err != nil {
		t.Fatalf("create person: %v", err)
	}
	if response.CustomerID != "cus-1" {
		t.Fatalf("unexpected response %+v", response)
	}
	if gotBody["type"] != "PERSON" {
		t.Fatalf("unexpected type %v", gotBody["type"])
	}
	details, _ := gotBody["person_details"].(map[string]any)
	address, _ := details["address"].(map[string]any)
	if address["country"] != "USA" {
		t.Fatalf("expected country default, got %v", address["country"])
	}
	phone, _ := details["phone"].(map[string]any)
	if phone["country_code"] != "USA" {
		t.Fatalf("expected phone country default, got %v", phone["country_code"])
	}
	questions, _ := gotBody["cdd_questions"].([]any)
	if len(questions) != 1 {
		t.Fatalf("expected one cdd question, got %v", gotBody["cdd_questions"])
	}
	question, _ := questions[0].(map[string]any)
	answer, _ := question["answer"].(map[string]any)
	if question["id"] != "1" || answer["id"] != "2" {
		t.Fatalf("unexpected PEP answer %v", question)
	}
}

func TestEntities_ListDecodesBothShapes(t *testing.T) {
	payloads := []string{
		`[{"id":"ent-1"},{"id":"ent-2"}]`,
		`{"entities":[{"id":"ent-1"},{"id":"ent-2"}]}`,
	}
	for _, payload := range payloads {
		body := payload
		api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		entities, err := api.client(t).Entities().List(context.Background(), 0, 10)
		api.close()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(entities) != 2 || entities[0].ID != "ent-1" || entities[1].ID != "ent-2" {
			t.Fatalf("payload %s decoded to %+v", body, entities)
		}
	}
}

func TestEntities_SearchSingleObjectShape(t *testing.T) {
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"ent-1","account_number":"123456"}`))
	})
	defer api.close()

	entity, err := api.client(t).Entities().FindByAccountAndRouting(context.Background(), "123456", "021000021")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if entity == nil || entity.ID != "ent-1" {
		t.Fatalf("unexpected entity %+v", entity)
	}
}

func TestEntities_CreateDefaultsCustomString(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"id":"ent-1"}`))
	})
	defer api.close()

	_, err := api.client(t).Entities().Create(context.Background(), CreateEntityRequest{
		AccountNumber:     "123456",
		RoutingNumber:     "021000021",
		AccountHolderName: "Ada's Very Long Company Name, LLC.",
	}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotBody["account_type"] != EntityAccountTypeChecking {
		t.Fatalf("expected checking default, got %v", gotBody["account_type"])
	}
	holder, _ := gotBody["account_holder_name"].(string)
	if len(holder) > MaxAccountHolderNameLen {
		t.Fatalf("holder name not truncated: %q", holder)
	}
	custom, _ := gotBody["custom_string"].(string)
	if len(custom) != 64 {
		t.Fatalf("expected sha256 hex custom string, got %q", custom)
	}

	// Same account and routing pair yields the same custom string.
	first := custom
	if _, err := api.client(t).Entities().Create(context.Background(), CreateEntityRequest{
		AccountNumber:     "123456",
		RoutingNumber:     "021000021",
		AccountHolderName: "Ada",
	}, ""); err != nil {
		t.Fatalf("second create: %v", err)
	}
	if gotBody["custom_string"] != first {
		t.Fatalf("custom string must be deterministic")
	}
}

func TestTransfers_ACHPayloadSanitized(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"id":"trf-1","status":"PENDING","type":"DEBIT"}`))
	})
	defer api.close()

	transfer, err := api.client(t).Transfers().CreateACH(context.Background(), CreateACHTransferRequest{
		AccountID:           "acc-1",
		EntityID:            "ent-1",
		Type:                TransferTypeDebit,
		Amount:              125.50,
		Description:         "Invoice #42: May & June",
		ExternalDescription: "ACME Corp. payment!",
	}, "")
	if err != nil {
		t.Fatalf("create ach: %v", err)
	}
	if gotBody["description"] != "Invoice 42 May  June" {
		t.Fatalf("description not sanitized: %v", gotBody["description"])
	}
	if gotBody["external_description"] != "ACME Corp payment" {
		t.Fatalf("external description not sanitized: %v", gotBody["external_description"])
	}
	if gotBody["same_day_ach"] != false {
		t.Fatalf("expected same_day_ach false, got %v", gotBody["same_day_ach"])
	}
	if !transfer.IsPending() || !transfer.IsDebit() {
		t.Fatalf("unexpected transfer %+v", transfer)
	}
}

func TestTransfers_CancelACHSendsBody(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{}`))
	})
	defer api.close()

	ok, err := api.client(t).Transfers().CancelACH(context.Background(), "trf-1", "acc-1", "")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !ok {
		t.Fatalf("expected success")
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("expected DELETE, got %q", gotMethod)
	}
	if gotBody["id"] != "trf-1" || gotBody["account_id"] != "acc-1" {
		t.Fatalf("unexpected cancel body %v", gotBody)
	}
}

func TestTransfers_WirePayloadShape(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"id":"wire-1"}`))
	})
	defer api.close()

	_, err := api.client(t).Transfers().CreateWire(context.Background(), CreateWireTransferRequest{
		AccountID:     "acc-1",
		EntityID:      "ent-1",
		Amount:        5000,
		EffectiveDate: "2026-09-01",
		Recipient: WireRecipient{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Address:   Address{Street: "1 Main St", City: "Austin", State: "TX", PostalCode: "78701"},
		},
		Description: "Closing funds: unit #4B",
	}, "")
	if err != nil {
		t.Fatalf("create wire: %v", err)
	}
	if gotBody["type"] != WireTypeDomestic {
		t.Fatalf("expected domestic wire, got %v", gotBody["type"])
	}
	wire, _ := gotBody["wire_details"].(map[string]any)
	if wire["description"] != "Closing funds unit 4B" {
		t.Fatalf("description not sanitized: %v", wire["description"])
	}
	recipient, _ := wire["recipient_details"].(map[string]any)
	if recipient["first_name"] != "Ada" || recipient["last_name"] != "Lovelace" {
		t.Fatalf("unexpected recipient %v", recipient)
	}
	if _, hasName := recipient["name"]; hasName {
		t.Fatalf("individual recipients must not set a business name")
	}
	address, _ := recipient["address"].(map[string]any)
	if address["address_line_1"] != "1 Main St" || address["postal_code"] != "78701" {
		t.Fatalf("unexpected recipient address %v", address)
	}
}

func TestAccounts_TransactionsQuery(t *testing.T) {
	var gotQuery map[string]string
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"start_date":  r.URL.Query().Get("start_date"),
			"end_date":    r.URL.Query().Get("end_date"),
			"page_number": r.URL.Query().Get("page_number"),
		}
		_, _ = w.Write([]byte(`[
			{"id":"txn-1","amount":10.5,"status_code":"C","credit_or_debit":"CREDIT"},
			{"id":"txn-2","amount":3.25,"status_code":"P","credit_or_debit":"DEBIT"}
		]`))
	})
	defer api.close()

	transactions, err := api.client(t).Accounts().Transactions(context.Background(), "acc-1", TransactionsQuery{
		StartDate:  "2026-08-01",
		EndDate:    "2026-08-31",
		PageNumber: 2,
	})
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if gotQuery["start_date"] != "2026-08-01" || gotQuery["end_date"] != "2026-08-31" {
		t.Fatalf("unexpected date window %v", gotQuery)
	}
	if gotQuery["page_number"] != "2" {
		t.Fatalf("unexpected page %v", gotQuery)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected two transactions, got %d", len(transactions))
	}
	if !transactions[0].IsCompleted() || !transactions[0].IsCredit() {
		t.Fatalf("unexpected first transaction %+v", transactions[0])
	}
	if !transactions[1].IsPending() || !transactions[1].IsDebit() {
		t.Fatalf("unexpected second transaction %+v", transactions[1])
	}
}

func TestAccounts_FreezeUnfreeze(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{}`))
	})
	defer api.close()

	client := api.client(t)
	if _, err := client.Accounts().Freeze(context.Background(), "acc-1"); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if gotPath != "/accounts/acc-1/freeze" || gotBody["freeze_account"] != true {
		t.Fatalf("unexpected freeze call %q %v", gotPath, gotBody)
	}
	if _, err := client.Accounts().Unfreeze(context.Background(), "acc-1"); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}
	if gotBody["freeze_account"] != false {
		t.Fatalf("unexpected unfreeze body %v", gotBody)
	}
}

func TestWebhooks_ListAndEventScopes(t *testing.T) {
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/webhook/list":
			_, _ = w.Write([]byte(`{"webhooks":[{"id":"wh-1","url":"https://example.com/hooks"}]}`))
		case "/webhook/list/events":
			_, _ = w.Write([]byte(`{"event_scopes":["account.deposit","customer"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer api.close()

	client := api.client(t)
	hooks, err := client.Webhooks().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hooks) != 1 || hooks[0].ID != "wh-1" {
		t.Fatalf("unexpected webhooks %+v", hooks)
	}

	scopes, err := client.Webhooks().EventScopes(context.Background())
	if err != nil {
		t.Fatalf("event scopes: %v", err)
	}
	if len(scopes) != 2 || scopes[0] != "account.deposit" {
		t.Fatalf("unexpected scopes %v", scopes)
	}
}

func TestWebhooks_CreatePayload(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"id":"wh-1"}`))
	})
	defer api.close()

	webhook, err := api.client(t).Webhooks().Create(context.Background(),
		"https://example.com/hooks",
		[]string{"account.deposit", "customer"},
		"signing-secret",
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if webhook.ID != "wh-1" {
		t.Fatalf("unexpected webhook %+v", webhook)
	}
	if gotBody["url"] != "https://example.com/hooks" || gotBody["signing_secret"] != "signing-secret" {
		t.Fatalf("unexpected payload %v", gotBody)
	}
	scopes, _ := gotBody["event_scopes"].([]any)
	if len(scopes) != 2 {
		t.Fatalf("unexpected scopes %v", gotBody["event_scopes"])
	}
}
