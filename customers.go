package lsbx

import "context"

// Customer type discriminators.
const (
	CustomerTypePerson       = "PERSON"
	CustomerTypeOrganization = "ORGANIZATION"
)

// Customer is a customer record as the API returns it. Raw holds the
// full decoded response for fields the typed view does not cover.
type Customer struct {
	CustomerID          string               `json:"customer_id"`
	Type                string               `json:"type"`
	PersonDetails       *PersonDetails       `json:"person_details,omitempty"`
	OrganizationDetails *OrganizationDetails `json:"organization_details,omitempty"`
	Accounts            []map[string]any     `json:"accounts,omitempty"`

	Raw map[string]any `json:"-"`
}

func (c Customer) IsPerson() bool       { return c.Type == CustomerTypePerson }
func (c Customer) IsOrganization() bool { return c.Type == CustomerTypeOrganization }

type CreateCustomerResponse struct {
	CustomerID string           `json:"customer_id"`
	Accounts   []map[string]any `json:"accounts,omitempty"`

	Raw map[string]any `json:"-"`
}

// SearchCustomerRequest narrows a customer search. Zero-valued fields
// are left out of the request.
type SearchCustomerRequest struct {
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	TaxID            string `json:"tax_id,omitempty"`
	CustomerID       string `json:"customer_id,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	IsOrganization   bool   `json:"is_organization"`
}

// UpdateCustomerRequest carries the replacement detail block for an
// existing customer.
type UpdateCustomerRequest struct {
	Type                string               `json:"type"`
	PersonDetails       *PersonDetails       `json:"person_details,omitempty"`
	OrganizationDetails *OrganizationDetails `json:"organization_details,omitempty"`
}

// CustomersResource groups the customer operations.
type CustomersResource struct {
	client *Client
}

type createCustomerPayload struct {
	Type                string               `json:"type"`
	PersonDetails       *PersonDetails       `json:"person_details,omitempty"`
	OrganizationDetails *OrganizationDetails `json:"organization_details,omitempty"`
	CddQuestions        []CddQuestion        `json:"cdd_questions,omitempty"`
}

// CreatePerson registers an individual customer. cddQuestions may be
// nil; pass idempotencyKey "" to have one generated.
func (r *CustomersResource) CreatePerson(ctx context.Context, details PersonDetails, cddQuestions []CddQuestion, idempotencyKey string) (CreateCustomerResponse, error) {
	payload := createCustomerPayload{
		Type:          CustomerTypePerson,
		PersonDetails: ptr(details.normalized()),
		CddQuestions:  cddQuestions,
	}
	envelope, err := r.client.Post(ctx, "customers", payload, idempotencyHeaders(idempotencyKey))
	if err != nil {
		return CreateCustomerResponse{}, err
	}
	response := fromRawMap[CreateCustomerResponse](envelope.Data())
	response.Raw = envelope.Data()
	return response, nil
}

// CreateOrganization registers an organization customer.
func (r *CustomersResource) CreateOrganization(ctx context.Context, details OrganizationDetails, idempotencyKey string) (CreateCustomerResponse, error) {
	payload := createCustomerPayload{
		Type:                CustomerTypeOrganization,
		OrganizationDetails: ptr(details.normalized()),
	}
	envelope, err := r.client.Post(ctx, "customers", payload, idempotencyHeaders(idempotencyKey))
	if err != nil {
		return CreateCustomerResponse{}, err
	}
	response := fromRawMap[CreateCustomerResponse](envelope.Data())
	response.Raw = envelope.Data()
	return response, nil
}

// Search looks up a single customer. It returns nil, nil when the API
// response carries no customer.
func (r *CustomersResource) Search(ctx context.Context, request SearchCustomerRequest) (*Customer, error) {
	envelope, err := r.client.Post(ctx, "customers/search", request, nil)
	if err != nil {
		return nil, err
	}
	data := envelope.Data()
	if len(data) == 0 {
		return nil, nil
	}
	if _, ok := data["customer_id"]; !ok {
		return nil, nil
	}
	customer := fromRawMap[Customer](data)
	customer.Raw = data
	return &customer, nil
}

// FindByName searches individuals by first and last name.
func (r *CustomersResource) FindByName(ctx context.Context, firstName, lastName string) (*Customer, error) {
	return r.Search(ctx, SearchCustomerRequest{FirstName: firstName, LastName: lastName})
}

// FindByTaxID searches by tax id.
func (r *CustomersResource) FindByTaxID(ctx context.Context, taxID string) (*Customer, error) {
	return r.Search(ctx, SearchCustomerRequest{TaxID: taxID})
}

// FindByID searches by customer id.
func (r *CustomersResource) FindByID(ctx context.Context, customerID string) (*Customer, error) {
	return r.Search(ctx, SearchCustomerRequest{CustomerID: customerID})
}

// FindOrganizationByName searches organizations by name.
func (r *CustomersResource) FindOrganizationByName(ctx context.Context, organizationName string) (*Customer, error) {
	return r.Search(ctx, SearchCustomerRequest{
		OrganizationName: organizationName,
		IsOrganization:   true,
	})
}

// Update replaces the detail block of an existing customer and returns
// the decoded response body.
func (r *CustomersResource) Update(ctx context.Context, customerID string, request UpdateCustomerRequest) (map[string]any, error) {
	if request.PersonDetails != nil {
		request.PersonDetails = ptr(request.PersonDetails.normalized())
	}
	if request.OrganizationDetails != nil {
		request.OrganizationDetails = ptr(request.OrganizationDetails.normalized())
	}
	envelope, err := r.client.Patch(ctx, "customers/"+customerID, request)
	if err != nil {
		return nil, err
	}
	return envelope.Data(), nil
}

// UpdatePerson is shorthand for Update with a person detail block.
func (r *CustomersResource) UpdatePerson(ctx context.Context, customerID string, details PersonDetails) (map[string]any, error) {
	return r.Update(ctx, customerID, UpdateCustomerRequest{
		Type:          CustomerTypePerson,
		PersonDetails: &details,
	})
}

// UpdateOrganization is shorthand for Update with an organization
// detail block.
func (r *CustomersResource) UpdateOrganization(ctx context.Context, customerID string, details OrganizationDetails) (map[string]any, error) {
	return r.Update(ctx, customerID, UpdateCustomerRequest{
		Type:                CustomerTypeOrganization,
		OrganizationDetails: &details,
	})
}

func ptr[T any](value T) *T { return &value }
