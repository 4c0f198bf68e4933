package domain

import "time"

// Subscription plans. New tenants always start on the free plan.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Tenant is an isolated customer account. Every other persisted entity except
// Tenant itself carries a TenantID pointing here.
type Tenant struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	SubscriptionPlan string    `json:"subscription_plan"`
	CreatedAt        time.Time `json:"created_at"`
}
