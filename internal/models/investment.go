package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Investment is one user's aggregate mutual-fund portfolio snapshot as
// returned by GET investments/.
type Investment struct {
	UserName               string             `json:"user_name"`
	CurrentValue           decimal.Decimal    `json:"current_value"`
	InitialValue           decimal.Decimal    `json:"initial_value"`
	BestPerformingScheme   string             `json:"best_performing_scheme"`
	BestPerformanceChange  string             `json:"best_performance_change"`
	WorstPerformingScheme  string             `json:"worst_performing_scheme"`
	WorstPerformanceChange string             `json:"worst_performance_change"`
	PerformanceHistory     []PerformancePoint `json:"performance_history"`
	SectorAllocations      []SectorAllocation `json:"sector_allocations"`
}

// UnmarshalJSON tolerates null scheme names and changes, which the upstream
// API emits when no scheme data was recorded.
func (i *Investment) UnmarshalJSON(b []byte) error {
	type plain struct {
		UserName               string             `json:"user_name"`
		CurrentValue           decimal.Decimal    `json:"current_value"`
		InitialValue           decimal.Decimal    `json:"initial_value"`
		BestPerformingScheme   *string            `json:"best_performing_scheme"`
		BestPerformanceChange  *string            `json:"best_performance_change"`
		WorstPerformingScheme  *string            `json:"worst_performing_scheme"`
		WorstPerformanceChange *string            `json:"worst_performance_change"`
		PerformanceHistory     []PerformancePoint `json:"performance_history"`
		SectorAllocations      []SectorAllocation `json:"sector_allocations"`
	}
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*i = Investment{
		UserName:               p.UserName,
		CurrentValue:           p.CurrentValue,
		InitialValue:           p.InitialValue,
		BestPerformingScheme:   deref(p.BestPerformingScheme),
		BestPerformanceChange:  deref(p.BestPerformanceChange),
		WorstPerformingScheme:  deref(p.WorstPerformingScheme),
		WorstPerformanceChange: deref(p.WorstPerformanceChange),
		PerformanceHistory:     p.PerformanceHistory,
		SectorAllocations:      p.SectorAllocations,
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PerformancePoint is one (date, value) sample of an investment's history
type PerformancePoint struct {
	Date  FlexibleDate    `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SectorAllocation represents the share of an investment held in one sector.
// Percentage is display text such as "34%".
type SectorAllocation struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage string          `json:"percentage"`
	BgColor    string          `json:"bgcolor"`
}

// Fund is a single mutual fund with its stock holdings
type Fund struct {
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Holdings []FundHolding `json:"holdings"`
}

// FundHolding is a relative weight of one stock inside a fund.
// Weights are not required to sum to any total.
type FundHolding struct {
	Stock  string  `json:"stock"`
	Weight float64 `json:"weight"`
}

// User is the account returned alongside a login token
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName prefers the user's first name, then username, then email
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
