package crm

import "time"

// RegisterRequest is the payload for registering a new user account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	TenantID  string `json:"tenant_id,omitempty"`
}

// UserCreateRequest is the payload for creating a user.
type UserCreateRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// UserUpdateRequest is the payload for updating a user. Nil fields are
// omitted so the server only touches what the caller set.
type UserUpdateRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// TenantCreateRequest is the payload for creating a tenant.
type TenantCreateRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Plan string `json:"plan,omitempty"`
}

// CustomerCreateRequest is the payload for creating a customer.
type CustomerCreateRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Email       *Email `json:"email,omitempty"`
	Phone       *Phone `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
}

// CustomerUpdateRequest is the payload for updating a customer. Version
// carries the expected version for optimistic locking when set.
type CustomerUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Email       *Email  `json:"email,omitempty"`
	Phone       *Phone  `json:"phone,omitempty"`
	Website     *string `json:"website,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Description *string `json:"description,omitempty"`
	Version     *int    `json:"version,omitempty"`
}

// ContactCreateRequest is the payload for creating a contact under a customer.
type ContactCreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Title     string `json:"title,omitempty"`
	Email     *Email `json:"email,omitempty"`
	Phone     *Phone `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// LeadCreateRequest is the payload for creating a lead.
type LeadCreateRequest struct {
	CompanyName  string `json:"company_name,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Source       string `json:"source,omitempty"`
	Score        int    `json:"score,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// LeadUpdateRequest is the payload for updating a lead.
type LeadUpdateRequest struct {
	CompanyName  *string `json:"company_name,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Source       *string `json:"source,omitempty"`
	Status       *string `json:"status,omitempty"`
	Score        *int    `json:"score,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	AssignedTo   *string `json:"assigned_to,omitempty"`
}

// OpportunityCreateRequest is the payload for creating an opportunity.
type OpportunityCreateRequest struct {
	CustomerID    string     `json:"customer_id"`
	PipelineID    string     `json:"pipeline_id"`
	StageID       string     `json:"stage_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	ValueAmount   int64      `json:"value_amount"`
	ValueCurrency string     `json:"value_currency,omitempty"`
	Probability   int        `json:"probability,omitempty"`
	ExpectedClose *time.Time `json:"expected_close,omitempty"`
}
