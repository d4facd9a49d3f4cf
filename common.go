package lsbx

import "encoding/json"

// DefaultCountryCode applies to addresses, phones, and identification
// documents that do not set one.
const DefaultCountryCode = "USA"

// Identification document types the API accepts.
const (
	IdentificationDriversLicense = "DRIVERS_LICENSE"
	IdentificationPassport       = "PASSPORT"
	IdentificationStateID        = "STATE_ID"
)

// Address is a postal address. Country defaults to USA when empty.
type Address struct {
	Street      string `json:"street"`
	StreetLine2 string `json:"street_line_2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	Region      string `json:"region,omitempty"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
}

func (a Address) normalized() Address {
	if a.Country == "" {
		a.Country = DefaultCountryCode
	}
	return a
}

// wireMap renders the address in the shape the wire endpoint expects,
// which numbers its address lines instead of naming the street.
func (a Address) wireMap() map[string]any {
	a = a.normalized()
	out := map[string]any{
		"address_line_1": a.Street,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
	}
	if a.StreetLine2 != "" {
		out["address_line_2"] = a.StreetLine2
	}
	return out
}

type Phone struct {
	CountryCode string `json:"country_code"`
	Number      string `json:"number"`
}

func (p Phone) normalized() Phone {
	if p.CountryCode == "" {
		p.CountryCode = DefaultCountryCode
	}
	return p
}

type Identification struct {
	Type        string `json:"type"`
	Number      string `json:"number"`
	IssueDate   string `json:"issue_date"`
	ExpireDate  string `json:"expire_date"`
	CountryCode string `json:"country_code"`
}

func (i Identification) normalized() Identification {
	if i.CountryCode == "" {
		i.CountryCode = DefaultCountryCode
	}
	return i
}

// PersonDetails identifies an individual customer. Dates use the
// YYYY-MM-DD form the API expects.
type PersonDetails struct {
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	MiddleName     string         `json:"middle_name,omitempty"`
	BirthDate      string         `json:"birth_date"`
	Address        Address        `json:"address"`
	Phone          Phone          `json:"phone"`
	Identification Identification `json:"identification"`
	TaxID          string         `json:"tax_id"`
	Email          string         `json:"email"`
	OccupationCode string         `json:"occupation_code"`
}

func (p PersonDetails) normalized() PersonDetails {
	p.Address = p.Address.normalized()
	p.Phone = p.Phone.normalized()
	p.Identification = p.Identification.normalized()
	return p
}

type OrganizationDetails struct {
	Name          string  `json:"name"`
	DbaName       string  `json:"dba_name,omitempty"`
	FormationDate string  `json:"formation_date"`
	Address       Address `json:"address"`
	Phone         Phone   `json:"phone"`
	TaxID         string  `json:"tax_id"`
	Email         string  `json:"email"`
	NaicsCode     string  `json:"naics_code"`
}

func (o OrganizationDetails) normalized() OrganizationDetails {
	o.Address = o.Address.normalized()
	o.Phone = o.Phone.normalized()
	return o
}

// CddQuestion is one customer due diligence answer. The API keys
// questions and answers by opaque string ids.
type CddQuestion struct {
	ID     string    `json:"id"`
	Answer CddAnswer `json:"answer"`
}

type CddAnswer struct {
	ID string `json:"id"`
}

// NotPoliticallyExposed answers the PEP question negatively, the
// common case.
func NotPoliticallyExposed() CddQuestion {
	return CddQuestion{ID: "1", Answer: CddAnswer{ID: "2"}}
}

// IsPoliticallyExposed answers the PEP question affirmatively.
func IsPoliticallyExposed() CddQuestion {
	return CddQuestion{ID: "1", Answer: CddAnswer{ID: "1"}}
}

// fromRawMap round-trips a decoded JSON object into a typed value.
// Fields absent from the map stay at their zero values.
func fromRawMap[T any](raw map[string]any) T {
	var out T
	if len(raw) == 0 {
		return out
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(encoded, &out)
	return out
}
