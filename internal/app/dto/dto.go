package dto

import (
	"time"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/role"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============ Common ============

type ErrorResponse struct {
	Status      string `json:"status"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Auth ============

type RegisterRequest struct {
	Login    string    `json:"login" binding:"required,min=3,max=50"`
	Password string    `json:"password" binding:"required,min=6"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email" binding:"omitempty,email"`
	Phone    string    `json:"phone" binding:"omitempty,e164"`
	Role     role.Role `json:"role" binding:"oneof=0 1"` // admins are seeded, never registered
	Skills   []string  `json:"skills"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	UserID    uint      `json:"user_id"`
	Login     string    `json:"login"`
	Role      role.Role `json:"role"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int       `json:"expires_in"`
}

// ============ Catalog ============

type ServiceResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" swaggertype:"string"`
	ExpertShareType  ds.ShareType    `json:"expert_share_type"`
	ExpertShareValue decimal.Decimal `json:"expert_share_value" swaggertype:"string"`
	Plans            []PlanResponse  `json:"plans,omitempty"`
}

type PlanResponse struct {
	ID        uint            `json:"id"`
	ServiceID uint            `json:"service_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
}

type CreateServiceRequest struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" binding:"required" swaggertype:"string"`
	ExpertShareType  ds.ShareType    `json:"expert_share_type" binding:"required,oneof=PERCENTAGE FIXED"`
	ExpertShareValue decimal.Decimal `json:"expert_share_value" binding:"required" swaggertype:"string"`
}

type CreatePlanRequest struct {
	ServiceID        uint            `json:"service_id" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Price            decimal.Decimal `json:"price" binding:"required" swaggertype:"string"`
	ExpertShareType  ds.ShareType    `json:"expert_share_type" binding:"required,oneof=PERCENTAGE FIXED"`
	ExpertShareValue decimal.Decimal `json:"expert_share_value" binding:"required" swaggertype:"string"`
}

type MatchRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type MatchResponse struct {
	Service ServiceResponse `json:"service"`
	Skills  []string        `json:"skills"`
	Reason  string          `json:"reason"`
}

// ============ Requests ============

type CheckoutRequest struct {
	ServiceID     *uint `json:"service_id"`
	PricingPlanID *uint `json:"pricing_plan_id"`
}

type PaymentConfirmation struct {
	EventID string `json:"event_id"`
}

type OpenPoolRequest struct {
	RequiredSkills []string `json:"required_skills"`
}

type AssignRequest struct {
	ExpertID uint `json:"expert_id" binding:"required"`
}

type ResolveRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=resume review complete cancel"`
}

type RequestResponse struct {
	ID               uuid.UUID       `json:"id" swaggertype:"string"`
	DisplayID        string          `json:"display_id"`
	ClientID         uint            `json:"client_id"`
	ServiceID        *uint           `json:"service_id,omitempty"`
	PricingPlanID    *uint           `json:"pricing_plan_id,omitempty"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string"`
	Status           string          `json:"status"`
	DisputedFrom     *string         `json:"disputed_from,omitempty"`
	Visibility       string          `json:"visibility"`
	AssignedExpertID *uint           `json:"assigned_expert_id,omitempty"`
	RequiredSkills   []string        `json:"required_skills,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	WorkStartedAt    *time.Time      `json:"work_started_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	InvoiceDisplayID *string         `json:"invoice_display_id,omitempty"`
	PayoutID         *uint           `json:"payout_id,omitempty"`
}

type PaymentResponse struct {
	Request RequestResponse  `json:"request"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
	Warning string           `json:"warning,omitempty"`
}

type PoolResponse struct {
	Request RequestResponse `json:"request"`
	Invited []uint          `json:"invited"`
}

type InviteResponse struct {
	RequestID uuid.UUID `json:"request_id" swaggertype:"string"`
	ExpertID  uint      `json:"expert_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============ Invoices ============

type InvoiceResponse struct {
	ID          uint            `json:"id"`
	DisplayID   string          `json:"display_id"`
	RequestID   uuid.UUID       `json:"request_id" swaggertype:"string"`
	ClientID    uint            `json:"client_id"`
	Base        decimal.Decimal `json:"base" swaggertype:"string"`
	Tax         decimal.Decimal `json:"tax" swaggertype:"string"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Status      string          `json:"status"`
	HasDocument bool            `json:"has_document"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ============ Payouts ============

type PayoutCreateRequest struct {
	RequestIDs []uuid.UUID `json:"request_ids" swaggertype:"array,string"`
}

type BalanceResponse struct {
	ExpertID uint            `json:"expert_id"`
	Balance  decimal.Decimal `json:"balance" swaggertype:"string"`
	Requests []EarningItem   `json:"requests"`
}

type EarningItem struct {
	RequestID uuid.UUID       `json:"request_id" swaggertype:"string"`
	DisplayID string          `json:"display_id"`
	Share     decimal.Decimal `json:"share" swaggertype:"string"`
}

type PayoutResponse struct {
	ID            uint            `json:"id"`
	ExpertID      uint            `json:"expert_id"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	Status        string          `json:"status"`
	RequestDate   time.Time       `json:"request_date"`
	ProcessedDate *time.Time      `json:"processed_date,omitempty"`
	DecidedBy     *uint           `json:"decided_by,omitempty"`
	Items         []PayoutItem    `json:"items"`
}

type PayoutItem struct {
	RequestID uuid.UUID       `json:"request_id" swaggertype:"string"`
	Share     decimal.Decimal `json:"share" swaggertype:"string"`
}

// ============ Mapping ============

func FromRequest(r *ds.Request) RequestResponse {
	out := RequestResponse{
		ID:               r.ID,
		DisplayID:        r.DisplayID,
		ClientID:         r.ClientID,
		ServiceID:        r.ServiceID,
		PricingPlanID:    r.PricingPlanID,
		Amount:           r.Amount,
		Status:           string(r.Status),
		Visibility:       string(r.Visibility),
		AssignedExpertID: r.AssignedExpertID,
		RequiredSkills:   r.RequiredSkills,
		CreatedAt:        r.CreatedAt,
		PaidAt:           r.PaidAt,
		WorkStartedAt:    r.WorkStartedAt,
		CompletedAt:      r.CompletedAt,
		InvoiceDisplayID: r.InvoiceDisplayID,
		PayoutID:         r.PayoutID,
	}
	if r.DisputedFrom != nil {
		from := string(*r.DisputedFrom)
		out.DisputedFrom = &from
	}
	return out
}

func FromRequests(rs []ds.Request) []RequestResponse {
	out := make([]RequestResponse, len(rs))
	for i := range rs {
		out[i] = FromRequest(&rs[i])
	}
	return out
}

func FromInvoice(inv *ds.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &InvoiceResponse{
		ID:          inv.ID,
		RequestID:   inv.RequestID,
		ClientID:    inv.ClientID,
		Base:        inv.Base,
		Tax:         inv.Tax,
		Amount:      inv.Amount,
		Status:      string(inv.Status),
		HasDocument: inv.StorageKey != nil,
		CreatedAt:   inv.CreatedAt,
	}
	if inv.DisplayID != nil {
		out.DisplayID = *inv.DisplayID
	}
	return out
}

func FromPayout(p *ds.PayoutRequest) PayoutResponse {
	out := PayoutResponse{
		ID:            p.ID,
		ExpertID:      p.ExpertID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		RequestDate:   p.RequestDate,
		ProcessedDate: p.ProcessedDate,
		DecidedBy:     p.DecidedBy,
		Items:         make([]PayoutItem, len(p.Items)),
	}
	for i, item := range p.Items {
		out.Items[i] = PayoutItem{RequestID: item.RequestID, Share: item.Share}
	}
	return out
}

func FromService(s *ds.Service, plans []ds.PricingPlan) ServiceResponse {
	out := ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		Slug:             s.Slug,
		Description:      s.Description,
		Price:            s.Price,
		ExpertShareType:  s.ExpertShareType,
		ExpertShareValue: s.ExpertShareValue,
	}
	for _, p := range plans {
		out.Plans = append(out.Plans, PlanResponse{ID: p.ID, ServiceID: p.ServiceID, Name: p.Name, Slug: p.Slug, Price: p.Price})
	}
	return out
}
