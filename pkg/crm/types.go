package crm

import (
	"time"
)

// Entity is the base structure embedded by all CRM resources.
type Entity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User status values.
const (
	UserStatusActive              = "active"
	UserStatusPendingVerification = "pending_verification"
	UserStatusSuspended           = "suspended"
	UserStatusInactive            = "inactive"
)

// Customer type values.
const (
	CustomerTypeIndividual = "individual"
	CustomerTypeBusiness   = "business"
)

// Customer status values.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusChurned  = "churned"
)

// Lead status values.
const (
	LeadStatusNew         = "new"
	LeadStatusContacted   = "contacted"
	LeadStatusQualified   = "qualified"
	LeadStatusUnqualified = "unqualified"
	LeadStatusConverted   = "converted"
)

// Opportunity status values.
const (
	OpportunityStatusOpen = "open"
	OpportunityStatusWon  = "won"
	OpportunityStatusLost = "lost"
)

// Deal status values.
const (
	DealStatusPending   = "pending"
	DealStatusActive    = "active"
	DealStatusCompleted = "completed"
	DealStatusCancelled = "cancelled"
)

// AuthTokens represents an access/refresh token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// UserInfo is the condensed user representation returned with auth responses.
type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginResponse is the response from the login endpoint.
type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserInfo `json:"user"`
}

// User represents a platform user.
type User struct {
	Entity

	TenantID        string         `json:"tenant_id"`
	Email           string         `json:"email"`
	FirstName       string         `json:"first_name,omitempty"`
	LastName        string         `json:"last_name,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	AvatarURL       string         `json:"avatar_url,omitempty"`
	Status          string         `json:"status"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	LastLoginAt     *time.Time     `json:"last_login_at,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// FullName returns the user's display name, falling back to the email.
func (u *User) FullName() string {
	name := joinNames(u.FirstName, u.LastName)
	if name == "" {
		return u.Email
	}

	return name
}

// Tenant represents an isolated customer organization.
type Tenant struct {
	Entity

	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Status      string         `json:"status"`
	Plan        string         `json:"plan"`
	Settings    map[string]any `json:"settings,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	TrialEndsAt *time.Time     `json:"trial_ends_at,omitempty"`
}

// Email is an email address with metadata.
type Email struct {
	Address   string `json:"address"`
	Type      string `json:"type,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// Phone is a phone number with metadata.
type Phone struct {
	Number    string `json:"number"`
	Type      string `json:"type,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// Address is a physical address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Customer represents a customer account.
type Customer struct {
	Entity

	TenantID        string         `json:"tenant_id"`
	Code            string         `json:"code"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	Status          string         `json:"status"`
	Email           *Email         `json:"email,omitempty"`
	Phone           *Phone         `json:"phone,omitempty"`
	Website         string         `json:"website,omitempty"`
	Industry        string         `json:"industry,omitempty"`
	Description     string         `json:"description,omitempty"`
	BillingAddress  *Address       `json:"billing_address,omitempty"`
	ShippingAddress *Address       `json:"shipping_address,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Version         int            `json:"version,omitempty"`
}

// Contact represents a person associated with a customer.
type Contact struct {
	Entity

	CustomerID string         `json:"customer_id"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name,omitempty"`
	Title      string         `json:"title,omitempty"`
	Email      *Email         `json:"email,omitempty"`
	Phone      *Phone         `json:"phone,omitempty"`
	IsPrimary  bool           `json:"is_primary,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// FullName returns the contact's display name.
func (c *Contact) FullName() string {
	return joinNames(c.FirstName, c.LastName)
}

// Lead represents a sales lead.
type Lead struct {
	Entity

	TenantID               string         `json:"tenant_id"`
	CompanyName            string         `json:"company_name,omitempty"`
	ContactName            string         `json:"contact_name,omitempty"`
	ContactEmail           string         `json:"contact_email,omitempty"`
	ContactPhone           string         `json:"contact_phone,omitempty"`
	Source                 string         `json:"source,omitempty"`
	Status                 string         `json:"status"`
	Score                  int            `json:"score"`
	Website                string         `json:"website,omitempty"`
	Industry               string         `json:"industry,omitempty"`
	CompanySize            string         `json:"company_size,omitempty"`
	Budget                 string         `json:"budget,omitempty"`
	Timeline               string         `json:"timeline,omitempty"`
	Notes                  string         `json:"notes,omitempty"`
	AssignedTo             string         `json:"assigned_to,omitempty"`
	QualifiedAt            *time.Time     `json:"qualified_at,omitempty"`
	ConvertedAt            *time.Time     `json:"converted_at,omitempty"`
	ConvertedOpportunityID string         `json:"converted_opportunity_id,omitempty"`
	Metadata               map[string]any `json:"metadata,omitempty"`
}

// Money is a monetary value in minor units.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// DecimalAmount returns the amount in major units.
func (m Money) DecimalAmount() float64 {
	return float64(m.Amount) / 100
}

// PipelineStage is one stage of a sales pipeline.
type PipelineStage struct {
	ID          string `json:"id"`
	PipelineID  string `json:"pipeline_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Order       int    `json:"order"`
	Probability int    `json:"probability"`
	Color       string `json:"color,omitempty"`
}

// Pipeline is an ordered sequence of sales-process stages.
type Pipeline struct {
	Entity

	TenantID    string          `json:"tenant_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	IsDefault   bool            `json:"is_default"`
	Status      string          `json:"status"`
	Stages      []PipelineStage `json:"stages,omitempty"`
}

// Opportunity represents a sales opportunity moving through a pipeline.
type Opportunity struct {
	Entity

	TenantID      string         `json:"tenant_id"`
	CustomerID    string         `json:"customer_id"`
	LeadID        string         `json:"lead_id,omitempty"`
	PipelineID    string         `json:"pipeline_id"`
	StageID       string         `json:"stage_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Value         Money          `json:"value"`
	Probability   int            `json:"probability"`
	ExpectedClose *time.Time     `json:"expected_close,omitempty"`
	ActualClose   *time.Time     `json:"actual_close,omitempty"`
	AssignedTo    string         `json:"assigned_to,omitempty"`
	Status        string         `json:"status"`
	WonAt         *time.Time     `json:"won_at,omitempty"`
	LostAt        *time.Time     `json:"lost_at,omitempty"`
	LostReason    string         `json:"lost_reason,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// DealLineItem is a single line item in a closed deal.
type DealLineItem struct {
	ID              string `json:"id"`
	ProductName     string `json:"product_name"`
	Description     string `json:"description,omitempty"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unit_price"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	TaxPercent      int    `json:"tax_percent,omitempty"`
	TotalAmount     int64  `json:"total_amount"`
}

// Deal represents a closed deal created from a won opportunity.
type Deal struct {
	Entity

	TenantID      string         `json:"tenant_id"`
	OpportunityID string         `json:"opportunity_id"`
	CustomerID    string         `json:"customer_id"`
	DealNumber    string         `json:"deal_number,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Value         Money          `json:"value"`
	Status        string         `json:"status"`
	ClosedAt      *time.Time     `json:"closed_at,omitempty"`
	ContractStart *time.Time     `json:"contract_start,omitempty"`
	ContractEnd   *time.Time     `json:"contract_end,omitempty"`
	PaymentTerms  string         `json:"payment_terms,omitempty"`
	LineItems     []DealLineItem `json:"line_items,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Activity is a timeline entry attached to an entity.
type Activity struct {
	Entity

	TenantID    string         `json:"tenant_id"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	PerformedBy string         `json:"performed_by,omitempty"`
	PerformedAt time.Time      `json:"performed_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Note is a free-form note attached to an entity.
type Note struct {
	Entity

	TenantID   string `json:"tenant_id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Content    string `json:"content"`
	IsPinned   bool   `json:"is_pinned"`
	CreatedBy  string `json:"created_by"`
}

// ListResponse is a paginated list of resources. Page and PerPage always
// reflect the requested values; Total and TotalPages come from the server.
type ListResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether a subsequent page exists.
func (l *ListResponse[T]) HasNext() bool {
	return l.Page < l.TotalPages
}

// HasPrev reports whether a preceding page exists.
func (l *ListResponse[T]) HasPrev() bool {
	return l.Page > 1
}

func joinNames(first, last string) string {
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}
