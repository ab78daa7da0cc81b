package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type userRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// expenseRequest uses pointers so that a zero amount or user id can be told
// apart from a missing field.
type expenseRequest struct {
	Amount    *float64 `json:"amount"    validate:"required"`
	UserID    *int64   `json:"user_id"   validate:"required"`
	Timestamp *isoTime `json:"timestamp" validate:"required" swaggertype:"string" example:"2024-03-01T12:30:00Z"`
}

type expenseResponse struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	UserID    int64   `json:"user_id"`
	Timestamp string  `json:"timestamp" example:"2024-03-01T12:30:00Z"`
}

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Mapping ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toExpenseResponse(e *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		Amount:    e.Amount,
		UserID:    e.UserID,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func toExpenseResponses(expenses []*domain.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

// --- Timestamps ---

// isoTime accepts RFC 3339 or an ISO 8601 date-time without zone, which is
// read as UTC.
type isoTime struct {
	time.Time
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *isoTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string")
	}
	parsed, err := parseISOTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseISOTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), nil
	}
	for _, layout := range zonelessLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not an ISO 8601 date-time", s)
}
