package lsbx

import (
	"context"
	"strconv"
	"time"
)

// Account product and ownership codes.
const (
	ProductTypeChecking = "CHECKING"
	ProductTypeSavings  = "SAVINGS"

	OwnershipSingle = "SINGLE"
	OwnershipJoint  = "JOINT"

	DefaultProductCode = "FREE"
)

// Account is the full account record.
type Account struct {
	ID                       string           `json:"id"`
	ReportingForCustomerID   string           `json:"reporting_for_customer_id"`
	IsReportingForSigner     bool             `json:"is_reporting_for_signer"`
	IsReportingForOwner      bool             `json:"is_reporting_for_owner"`
	Balance                  float64          `json:"balance"`
	AvailableBalance         float64          `json:"available_balance"`
	ProductCategoryCode      string           `json:"product_category_code"`
	ProductTypeCode          string           `json:"product_type_code"`
	CurrentProductCode       string           `json:"current_product_code"`
	ProductName              string           `json:"product_name"`
	CurrentAccountStatusCode string           `json:"current_account_status_code"`
	IsValid                  bool             `json:"is_valid"`
	OwnerCode                string           `json:"owner_code"`
	OwnerDescription         string           `json:"owner_description"`
	ContractDate             string           `json:"contract_date"`
	DateLastContact          string           `json:"date_last_contact"`
	Description              string           `json:"description"`
	IsTransactionAccount     bool             `json:"is_transaction_account"`
	IsFrozen                 bool             `json:"is_frozen"`
	LastFrozenEffectiveDate  string           `json:"last_frozen_effective_date"`
	CurrencyCode             string           `json:"currency_code"`
	CurrencyDescription      string           `json:"currency_description"`
	Roles                    []map[string]any `json:"roles,omitempty"`

	Raw map[string]any `json:"-"`
}

func (a Account) IsActive() bool   { return a.CurrentAccountStatusCode == "ACTIVE" }
func (a Account) IsChecking() bool { return a.ProductTypeCode == ProductTypeChecking }
func (a Account) IsSavings() bool  { return a.ProductTypeCode == ProductTypeSavings }

// AccountDetails holds the banking coordinates of an account.
type AccountDetails struct {
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`

	Raw map[string]any `json:"-"`
}

type AccountLimits struct {
	ID                     string  `json:"id"`
	AccountID              string  `json:"account_id"`
	FintechID              string  `json:"fintech_id"`
	ACHDailyLimit          float64 `json:"ach_daily_limit"`
	ACHPerTransactionLimit float64 `json:"ach_per_transaction_limit"`
	UsedACHDailyLimit      float64 `json:"used_ach_daily_limit"`
	AvailableACHDailyLimit float64 `json:"available_ach_daily_limit"`
	CreatedDateTime        string  `json:"created_date_time"`
	UpdatedDateTime        string  `json:"updated_date_time"`
	IsDeleted              bool    `json:"is_deleted"`

	Raw map[string]any `json:"-"`
}

// RemainingDailyLimit reports the unspent portion of the ACH daily
// limit.
func (l AccountLimits) RemainingDailyLimit() float64 { return l.AvailableACHDailyLimit }

type CreateAccountResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`

	Raw map[string]any `json:"-"`
}

func (r CreateAccountResponse) IsActive() bool { return r.Status == "ACTIVE" }

// Transaction is one ledger entry on an account.
type Transaction struct {
	ID                    string  `json:"id"`
	AccountID             string  `json:"account_id"`
	TransactionNumber     int     `json:"transaction_number"`
	TransactionType       string  `json:"transaction_type"`
	TypeDescription       string  `json:"type_description"`
	StatusCode            string  `json:"status_code"`
	StatusDescription     string  `json:"status_description"`
	Amount                float64 `json:"amount"`
	CreditOrDebit         string  `json:"credit_or_debit"`
	RunningBalance        float64 `json:"running_balance"`
	OriginalPostDate      string  `json:"original_post_date"`
	OriginalEffectiveDate string  `json:"original_effective_date"`
	CurrentEffectiveDate  string  `json:"current_effective_date"`
	CashBackAmount        float64 `json:"cash_back_amount"`
	Description           string  `json:"description"`
	ExternalDescription   string  `json:"external_description"`
	BatchID               string  `json:"batch_id"`
	AllotmentNumber       string  `json:"allotment_number"`

	Raw map[string]any `json:"-"`
}

func (t Transaction) IsCompleted() bool { return t.StatusCode == "C" }
func (t Transaction) IsPending() bool   { return t.StatusCode == "P" }
func (t Transaction) IsCredit() bool    { return t.CreditOrDebit == "CREDIT" }
func (t Transaction) IsDebit() bool     { return t.CreditOrDebit == "DEBIT" }

// CreateAccountRequest opens a new deposit account for a customer.
// ProductType, ProductCode, and OwnershipType fall back to CHECKING,
// FREE, and SINGLE.
type CreateAccountRequest struct {
	Type        string
	CustomerID  string
	ProductType string
	ProductCode string
	Ownership   string
	Description string
}

func (r CreateAccountRequest) payload() map[string]any {
	accountType := r.Type
	if accountType == "" {
		accountType = CustomerTypePerson
	}
	productType := r.ProductType
	if productType == "" {
		productType = ProductTypeChecking
	}
	productCode := r.ProductCode
	if productCode == "" {
		productCode = DefaultProductCode
	}
	ownership := r.Ownership
	if ownership == "" {
		ownership = OwnershipSingle
	}
	details := map[string]any{
		"product_type":   productType,
		"product_code":   productCode,
		"customer_id":    r.CustomerID,
		"ownership_type": ownership,
	}
	if r.Description != "" {
		details["description"] = r.Description
	}
	return map[string]any{
		"type":            accountType,
		"account_details": details,
	}
}

// TransactionsQuery bounds a transaction listing. Dates use
// YYYY-MM-DD; zero page values are left off the request.
type TransactionsQuery struct {
	StartDate  string
	EndDate    string
	PageNumber int
	PageSize   int
}

func (q TransactionsQuery) queryParams() map[string]string {
	params := map[string]string{
		"start_date": q.StartDate,
		"end_date":   q.EndDate,
	}
	if q.PageNumber > 0 {
		params["page_number"] = strconv.Itoa(q.PageNumber)
	}
	if q.PageSize > 0 {
		params["page_size"] = strconv.Itoa(q.PageSize)
	}
	return params
}

// AccountsResource groups the account and account-limit operations.
type AccountsResource struct {
	client *Client
}

// Create opens a new account. Pass idempotencyKey "" to have one
// generated.
func (r *AccountsResource) Create(ctx context.Context, request CreateAccountRequest, idempotencyKey string) (CreateAccountResponse, error) {
	envelope, err := r.client.Post(ctx, "accounts", request.payload(), idempotencyHeaders(idempotencyKey))
	if err != nil {
		return CreateAccountResponse{}, err
	}
	response := fromRawMap[CreateAccountResponse](envelope.Data())
	response.Raw = envelope.Data()
	return response, nil
}

// CreateChecking opens a single-ownership checking account.
func (r *AccountsResource) CreateChecking(ctx context.Context, customerID, idempotencyKey string) (CreateAccountResponse, error) {
	return r.Create(ctx, CreateAccountRequest{CustomerID: customerID, ProductType: ProductTypeChecking}, idempotencyKey)
}

// CreateSavings opens a single-ownership savings account.
func (r *AccountsResource) CreateSavings(ctx context.Context, customerID, idempotencyKey string) (CreateAccountResponse, error) {
	return r.Create(ctx, CreateAccountRequest{CustomerID: customerID, ProductType: ProductTypeSavings}, idempotencyKey)
}

// Get fetches one account.
func (r *AccountsResource) Get(ctx context.Context, accountID string) (Account, error) {
	envelope, err := r.client.Get(ctx, "accounts/"+accountID, nil)
	if err != nil {
		return Account{}, err
	}
	account := fromRawMap[Account](envelope.Data())
	account.Raw = envelope.Data()
	return account, nil
}

// Details fetches the account and routing numbers of an account.
func (r *AccountsResource) Details(ctx context.Context, accountID string) (AccountDetails, error) {
	envelope, err := r.client.Get(ctx, "accounts/"+accountID+"/details", nil)
	if err != nil {
		return AccountDetails{}, err
	}
	details := fromRawMap[AccountDetails](envelope.Data())
	details.Raw = envelope.Data()
	return details, nil
}

// Update changes the mutable account attributes and returns the
// decoded response body.
func (r *AccountsResource) Update(ctx context.Context, accountID, accountType, description string) (map[string]any, error) {
	details := map[string]any{}
	if description != "" {
		details["description"] = description
	}
	payload := map[string]any{
		"type":            accountType,
		"account_details": details,
	}
	envelope, err := r.client.Patch(ctx, "accounts/"+accountID, payload)
	if err != nil {
		return nil, err
	}
	return envelope.Data(), nil
}

func (r *AccountsResource) setFrozen(ctx context.Context, accountID string, frozen bool) (map[string]any, error) {
	envelope, err := r.client.Post(ctx, "accounts/"+accountID+"/freeze", map[string]any{"freeze_account": frozen}, nil)
	if err != nil {
		return nil, err
	}
	return envelope.Data(), nil
}

// Freeze blocks activity on an account.
func (r *AccountsResource) Freeze(ctx context.Context, accountID string) (map[string]any, error) {
	return r.setFrozen(ctx, accountID, true)
}

// Unfreeze lifts a freeze.
func (r *AccountsResource) Unfreeze(ctx context.Context, accountID string) (map[string]any, error) {
	return r.setFrozen(ctx, accountID, false)
}

// GetLimits fetches the ACH limits configured for an account.
func (r *AccountsResource) GetLimits(ctx context.Context, accountID string) (AccountLimits, error) {
	envelope, err := r.client.Get(ctx, "accounts/limits/"+accountID, nil)
	if err != nil {
		return AccountLimits{}, err
	}
	limits := fromRawMap[AccountLimits](envelope.Data())
	limits.Raw = envelope.Data()
	return limits, nil
}

// CreateLimits sets initial ACH limits on an account.
func (r *AccountsResource) CreateLimits(ctx context.Context, accountID string, dailyLimit, perTransactionLimit float64) (AccountLimits, error) {
	payload := map[string]any{
		"ach_daily_limit":           dailyLimit,
		"ach_per_transaction_limit": perTransactionLimit,
	}
	envelope, err := r.client.Post(ctx, "accounts/limits/"+accountID, payload, nil)
	if err != nil {
		return AccountLimits{}, err
	}
	limits := fromRawMap[AccountLimits](envelope.Data())
	limits.Raw = envelope.Data()
	return limits, nil
}

// UpdateLimitsRequest carries partial ACH limit changes; nil fields
// stay untouched upstream.
type UpdateLimitsRequest struct {
	ACHDailyLimit          *float64 `json:"ach_daily_limit,omitempty"`
	ACHPerTransactionLimit *float64 `json:"ach_per_transaction_limit,omitempty"`
}

// UpdateLimits applies partial limit changes.
func (r *AccountsResource) UpdateLimits(ctx context.Context, accountID string, request UpdateLimitsRequest) (AccountLimits, error) {
	envelope, err := r.client.Patch(ctx, "accounts/limits/"+accountID, request)
	if err != nil {
		return AccountLimits{}, err
	}
	limits := fromRawMap[AccountLimits](envelope.Data())
	limits.Raw = envelope.Data()
	return limits, nil
}

// DeleteLimits removes the limits from an account.
func (r *AccountsResource) DeleteLimits(ctx context.Context, accountID string) (bool, error) {
	envelope, err := r.client.Delete(ctx, "accounts/limits/"+accountID, nil)
	if err != nil {
		return false, err
	}
	return envelope.IsSuccessful(), nil
}

// Transactions lists ledger entries for the query window.
func (r *AccountsResource) Transactions(ctx context.Context, accountID string, query TransactionsQuery) ([]Transaction, error) {
	envelope, err := r.client.Get(ctx, "accounts/transactions/"+accountID, query.queryParams())
	if err != nil {
		return nil, err
	}
	items := envelope.List()
	transactions := make([]Transaction, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		transaction := fromRawMap[Transaction](raw)
		transaction.Raw = raw
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

// RecentTransactions lists the last N days of activity.
func (r *AccountsResource) RecentTransactions(ctx context.Context, accountID string, days int) ([]Transaction, error) {
	if days <= 0 {
		days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return r.Transactions(ctx, accountID, TransactionsQuery{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	})
}

// Transaction fetches one ledger entry.
func (r *AccountsResource) Transaction(ctx context.Context, accountID, transactionID string) (Transaction, error) {
	envelope, err := r.client.Get(ctx, "accounts/transactions/"+accountID+"/"+transactionID, nil)
	if err != nil {
		return Transaction{}, err
	}
	transaction := fromRawMap[Transaction](envelope.Data())
	transaction.Raw = envelope.Data()
	return transaction, nil
}
