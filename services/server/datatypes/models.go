// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes defines the persistent entities and derived values
// shared by the store, the computation engine, and the HTTP handlers.
//
// Entities are read-only snapshots from the engine's point of view: the
// engine consumes them and produces derived values (statuses, alerts,
// dashboard payloads) without mutating or persisting anything itself.
package datatypes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType distinguishes money in from money out. The stored amount
// is always positive; the sign is implied by the type.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// BudgetPeriod is the nominal cadence of a budget. The authoritative window
// is always [StartDate, EndDate]; the period is descriptive.
type BudgetPeriod string

const (
	PeriodWeekly    BudgetPeriod = "WEEKLY"
	PeriodMonthly   BudgetPeriod = "MONTHLY"
	PeriodQuarterly BudgetPeriod = "QUARTERLY"
	PeriodYearly    BudgetPeriod = "YEARLY"
)

// BudgetStatus is the display tier derived from spend percentage.
type BudgetStatus string

const (
	BudgetOnTrack    BudgetStatus = "ON_TRACK"
	BudgetWarning    BudgetStatus = "WARNING"
	BudgetOverBudget BudgetStatus = "OVER_BUDGET"
)

// GoalStatus is the derived state of a savings goal.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
	GoalOverdue    GoalStatus = "OVERDUE"
)

// ChatRole identifies the author of a stored chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "USER"
	RoleAssistant ChatRole = "ASSISTANT"
)

// User is an account holder. PasswordHash is a bcrypt digest and never
// leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName    string    `json:"firstName" gorm:"size:100"`
	LastName     string    `json:"lastName" gorm:"size:100"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// Category labels transactions and budgets. A user owns at most one
// category per (name, type) pair; lookups by bare (user, name) are a
// read-compatibility path only.
type Category struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null;uniqueIndex:idx_categories_user_name_type"`
	Name      string          `json:"name" gorm:"size:100;not null;uniqueIndex:idx_categories_user_name_type"`
	Type      TransactionType `json:"type" gorm:"size:10;not null;uniqueIndex:idx_categories_user_name_type"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (Category) TableName() string { return "categories" }

// Transaction is a single income or expense record. Amount is strictly
// positive; immutability is by convention once the engine has consumed it.
type Transaction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	CategoryID  *uuid.UUID      `json:"categoryId" gorm:"type:uuid;index"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Type        TransactionType `json:"type" gorm:"size:10;not null"`
	Date        time.Time       `json:"date" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"-"`
}

func (Transaction) TableName() string { return "transactions" }

// Budget caps expense spend for one category (or all expenses when
// CategoryID is nil) inside the closed window [StartDate, EndDate].
type Budget struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	CategoryID *uuid.UUID      `json:"categoryId" gorm:"type:uuid;index"`
	Category   *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name       string          `json:"name" gorm:"size:120;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Period     BudgetPeriod    `json:"period" gorm:"size:10;not null"`
	StartDate  time.Time       `json:"startDate" gorm:"not null"`
	EndDate    time.Time       `json:"endDate" gorm:"not null"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"-"`
}

func (Budget) TableName() string { return "budgets" }

// BudgetWithStatus is a budget plus the engine's derived fields. The JSON
// field names (spent, remaining, percentage, status) are a stable contract
// for the dashboard UI, chat function results, and reports.
type BudgetWithStatus struct {
	Budget
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int             `json:"percentage"`
	Status     BudgetStatus    `json:"status"`
}

// Goal is a savings target. CurrentAmount is maintained by the paired
// goal-progress write and may exceed TargetAmount; IsCompleted latches true
// once CurrentAmount reaches TargetAmount and never auto-reverts.
type Goal struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null"`
	Title         string          `json:"title" gorm:"size:150;not null"`
	Description   string          `json:"description" gorm:"size:500"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:decimal(12,2);not null"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:decimal(12,2);not null"`
	TargetDate    *time.Time      `json:"targetDate"`
	IsCompleted   bool            `json:"isCompleted" gorm:"not null"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"-"`
}

func (Goal) TableName() string { return "goals" }

// GoalWithProgress is a goal plus the engine's derived fields.
type GoalWithProgress struct {
	Goal
	Progress  int             `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    GoalStatus      `json:"status"`
}

// GoalProgress is one append-only ledger entry of a contribution toward a
// goal. Creating one and bumping the parent goal's CurrentAmount is a single
// atomic write (see store.AddGoalProgress).
type GoalProgress struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID    uuid.UUID       `json:"goalId" gorm:"type:uuid;index;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Note      *string         `json:"note" gorm:"size:255"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (GoalProgress) TableName() string { return "goal_progress" }

// ChatMessage is one stored turn of the assistant conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Role      ChatRole  `json:"role" gorm:"size:10;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	SessionID *string   `json:"sessionId" gorm:"size:64;index"`
	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// DailyUsage counts assistant messages per user per UTC day for the
// daily-limit throttle.
type DailyUsage struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_daily_usage_user_date"`
	Date         time.Time `json:"date" gorm:"not null;uniqueIndex:idx_daily_usage_user_date"`
	MessageCount int       `json:"messageCount" gorm:"not null"`
}

func (DailyUsage) TableName() string { return "daily_usage" }

// ReportType selects the analysis a report carries.
type ReportType string

const (
	ReportMonthlySummary   ReportType = "monthly_summary"
	ReportBudgetAnalysis   ReportType = "budget_analysis"
	ReportGoalProgress     ReportType = "goal_progress"
	ReportSpendingAnalysis ReportType = "spending_analysis"
	ReportExecutiveSummary ReportType = "executive_summary"
)

// ReportFormat selects the rendered artifact.
type ReportFormat string

const (
	FormatPDF   ReportFormat = "PDF"
	FormatExcel ReportFormat = "EXCEL"
	FormatJSON  ReportFormat = "JSON"
)

// Report is the history row for a generated report. The rendered bytes live
// in the artifact store keyed by ID.
type Report struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;index;not null"`
	Title     string       `json:"title" gorm:"size:200;not null"`
	Type      ReportType   `json:"type" gorm:"size:30;not null"`
	Period    string       `json:"period" gorm:"size:20;not null"`
	Format    ReportFormat `json:"format" gorm:"size:10;not null"`
	FileName  string       `json:"fileName" gorm:"size:200;not null"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (Report) TableName() string { return "reports" }

// Reminder is a scheduled nudge created by the assistant's
// createScheduledReminder tool.
type Reminder struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"size:150;not null"`
	Description string    `json:"description" gorm:"size:500"`
	RemindAt    time.Time `json:"remindAt" gorm:"not null"`
	IsDone      bool      `json:"isDone" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Reminder) TableName() string { return "reminders" }

// AllModels lists every persisted entity for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{}, &Category{}, &Transaction{}, &Budget{}, &Goal{},
		&GoalProgress{}, &Alert{}, &ChatMessage{}, &DailyUsage{},
		&Report{}, &Reminder{},
	}
}

// BeforeCreate assigns uuids so entities can be built without touching the
// id field at every call site.
func (u *User) BeforeCreate(*gorm.DB) error        { ensureID(&u.ID); return nil }
func (c *Category) BeforeCreate(*gorm.DB) error    { ensureID(&c.ID); return nil }
func (t *Transaction) BeforeCreate(*gorm.DB) error { ensureID(&t.ID); return nil }
func (b *Budget) BeforeCreate(*gorm.DB) error      { ensureID(&b.ID); return nil }
func (g *Goal) BeforeCreate(*gorm.DB) error        { ensureID(&g.ID); return nil }
func (p *GoalProgress) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
func (m *ChatMessage) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (d *DailyUsage) BeforeCreate(*gorm.DB) error  { ensureID(&d.ID); return nil }
func (r *Report) BeforeCreate(*gorm.DB) error      { ensureID(&r.ID); return nil }
func (r *Reminder) BeforeCreate(*gorm.DB) error    { ensureID(&r.ID); return nil }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
