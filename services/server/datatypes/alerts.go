// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertType classifies a smart alert.
type AlertType string

const (
	AlertBudgetExceeded  AlertType = "BUDGET_EXCEEDED"
	AlertGoalDeadline    AlertType = "GOAL_DEADLINE"
	AlertSpendingPattern AlertType = "SPENDING_PATTERN"
	AlertAchievement     AlertType = "ACHIEVEMENT"
	AlertRecommendation  AlertType = "RECOMMENDATION"
)

// AlertPriority orders alerts for display.
type AlertPriority string

const (
	PriorityLow    AlertPriority = "LOW"
	PriorityMedium AlertPriority = "MEDIUM"
	PriorityHigh   AlertPriority = "HIGH"
	PriorityUrgent AlertPriority = "URGENT"
)

// AlertCondition is the structured payload describing why an alert fired.
// One variant exists per alert family so the generator and its consumers
// can be checked exhaustively instead of passing untyped maps around.
type AlertCondition interface {
	isAlertCondition()
}

// BudgetCondition backs BUDGET_EXCEEDED alerts.
type BudgetCondition struct {
	BudgetID   uuid.UUID `json:"budgetId"`
	Percentage float64   `json:"percentage"`
}

// GoalDeadlineCondition backs GOAL_DEADLINE alerts. DaysLeft is set for
// overdue/deadline rules, Progress for the slow-progress rule.
type GoalDeadlineCondition struct {
	GoalID   uuid.UUID `json:"goalId"`
	DaysLeft *int      `json:"daysLeft,omitempty"`
	Progress *float64  `json:"progress,omitempty"`
}

// SpendingPatternCondition backs SPENDING_PATTERN spike alerts.
type SpendingPatternCondition struct {
	Category      string  `json:"category"`
	WeekSpending  float64 `json:"weekSpending"`
	WeeklyAverage float64 `json:"average"`
}

// AchievementCondition backs ACHIEVEMENT alerts. Achievement is one of
// "first_goal", "100_transactions", "budget_master".
type AchievementCondition struct {
	Achievement string `json:"achievement"`
}

// RecommendationCondition backs RECOMMENDATION alerts. Count and Total are
// zero for the create-budget suggestion.
type RecommendationCondition struct {
	Category string  `json:"category"`
	Count    int     `json:"count,omitempty"`
	Total    float64 `json:"total,omitempty"`
}

func (BudgetCondition) isAlertCondition()          {}
func (GoalDeadlineCondition) isAlertCondition()    {}
func (SpendingPatternCondition) isAlertCondition() {}
func (AchievementCondition) isAlertCondition()     {}
func (RecommendationCondition) isAlertCondition()  {}

// EncodeCondition serializes a condition variant to its canonical JSON form.
// The encoded string participates in the alert's natural key, so encoding
// must be deterministic for a given condition value.
func EncodeCondition(c AlertCondition) (string, error) {
	if c == nil {
		return "", fmt.Errorf("encode alert condition: nil condition")
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode alert condition: %w", err)
	}
	return string(raw), nil
}

// Alert is a derived notification. RuleID is deterministic per
// type+subject (e.g. "budget-<uuid>") so regenerating alerts on unchanged
// data yields the same identity; persistence upserts on the natural key
// (UserID, Type, Condition) and never duplicates rows.
type Alert struct {
	ID        uuid.UUID     `json:"-" gorm:"type:uuid;primaryKey"`
	RuleID    string        `json:"id" gorm:"size:120;index;not null"`
	UserID    uuid.UUID     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_alerts_user_type_condition"`
	Type      AlertType     `json:"type" gorm:"size:20;not null;uniqueIndex:idx_alerts_user_type_condition"`
	Condition string        `json:"condition" gorm:"size:500;not null;uniqueIndex:idx_alerts_user_type_condition"`
	Message   string        `json:"message" gorm:"size:500;not null"`
	Priority  AlertPriority `json:"priority" gorm:"size:10;not null"`
	IsActive  bool          `json:"isActive" gorm:"not null"`
	IsRead    bool          `json:"isRead" gorm:"not null"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (Alert) TableName() string { return "alerts" }

// BeforeCreate assigns the row uuid; RuleID stays caller-controlled.
func (a *Alert) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
