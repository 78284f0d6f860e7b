package domain

import "time"

// ActionKind is what an actor does to a requisition.
type ActionKind string

const (
	ActionApprove ActionKind = "approve"
	ActionReject  ActionKind = "reject"
	ActionComment ActionKind = "comment"
	ActionPay     ActionKind = "pay"
	ActionCancel  ActionKind = "cancel"
)

// ParseActionKind validates an action name coming from a client.
// "pay" is accepted as a synonym of approve at the payment stage.
func ParseActionKind(v string) (ActionKind, bool) {
	switch ActionKind(v) {
	case ActionApprove, ActionReject, ActionComment, ActionPay, ActionCancel:
		return ActionKind(v), true
	}
	return "", false
}

// ActionRecord is the immutable log entry written for every successful transition.
type ActionRecord struct {
	ActionID      string     `json:"actionID"`
	RequisitionID string     `json:"requisitionID"`
	UserID        string     `json:"userID"`
	Role          Role       `json:"role"`
	Action        ActionKind `json:"action"`
	Comment       string     `json:"comment"`
	StageBefore   Stage      `json:"stageBefore"`
	StageAfter    Stage      `json:"stageAfter"`
	StatusBefore  Status     `json:"statusBefore"`
	StatusAfter   Status     `json:"statusAfter"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// TransitionCommand is a fully decided state change handed to the store.
// The store applies it only if the requisition is still in Expected.
type TransitionCommand struct {
	RequisitionID string
	Expected      State
	Next          State
	PaymentMode   *PaymentMode
	Record        ActionRecord
	// Debit is set when the transition pays the requisition out of the fund.
	Debit *Movement
	// UpdatedAt is the audit timestamp applied to the requisition row.
	UpdatedAt time.Time
}

// TransitionResult is what the workflow engine returns after a successful action.
type TransitionResult struct {
	Requisition *Requisition
	Record      ActionRecord
	// Budget carries the advisory budget consult made on analyst approval, if any.
	Budget *BudgetCheckResult
}
