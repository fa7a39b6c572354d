package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published after a successful ledger mutation.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
	EventBudgetCreated  = "budget.created"
)

// LedgerEvent is a lightweight notification; consumers read the ledger for details.
type LedgerEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	ExpenseID int64     `json:"expense_id,omitempty"`
	Month     string    `json:"month,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent creates an event about a single expense.
func NewExpenseEvent(eventType string, id int64) *LedgerEvent {
	return &LedgerEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ExpenseID: id,
		Timestamp: time.Now(),
	}
}

// NewBudgetEvent creates an event about the budget of a month.
func NewBudgetEvent(month string) *LedgerEvent {
	return &LedgerEvent{
		EventID:   uuid.NewString(),
		Type:      EventBudgetCreated,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
