package domain

import (
	"fmt"
)

// Stage is the level of the approval chain currently responsible for a requisition (niveau).
type Stage string

const (
	StageInitiator      Stage = "initiator"
	StageAnalyst        Stage = "analyst"
	StageChallenger     Stage = "challenger"
	StageValidator      Stage = "validator"
	StageGeneralManager Stage = "general-manager"
	StagePayment        Stage = "payment"
	StageDone           Stage = "done"
)

// Status is the lifecycle status of a requisition (statut).
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in-progress"
	StatusToCorrect  Status = "to-correct"
	StatusValidated  Status = "validated"
	StatusRejected   Status = "rejected"
	StatusPaid       Status = "paid"
	StatusCancelled  Status = "cancelled"
)

// StageOrder is the happy path of the approval chain.
var StageOrder = []Stage{
	StageInitiator,
	StageAnalyst,
	StageChallenger,
	StageValidator,
	StageGeneralManager,
	StagePayment,
	StageDone,
}

// ReviewStages are the stages where a reviewer (not the initiator nor the accountant) acts.
var ReviewStages = []Stage{StageAnalyst, StageChallenger, StageValidator, StageGeneralManager}

// State is the combined stage/status of a requisition. Only the pairs built by
// the constructors below exist; ParseState refuses everything else.
type State struct {
	stage  Stage
	status Status
}

// Submitted is a fresh requisition waiting at the initiator stage.
func Submitted() State { return State{StageInitiator, StatusSubmitted} }

// ToCorrect is a requisition sent back to its initiator.
func ToCorrect() State { return State{StageInitiator, StatusToCorrect} }

// InReview is a requisition waiting on one of the review stages.
func InReview(stage Stage) (State, error) {
	if !IsReviewStage(stage) {
		return State{}, fmt.Errorf("stage %q is not a review stage", stage)
	}
	return State{stage, StatusInProgress}, nil
}

// AwaitingPayment is a fully approved requisition waiting for the accountant.
func AwaitingPayment() State { return State{StagePayment, StatusValidated} }

// Paid is the terminal state of a paid requisition.
func Paid() State { return State{StageDone, StatusPaid} }

// Rejected is the terminal state of a rejected requisition.
func Rejected() State { return State{StageDone, StatusRejected} }

// Cancelled is the terminal state of a requisition withdrawn by its initiator.
func Cancelled() State { return State{StageDone, StatusCancelled} }

// ParseState rebuilds a State from its persisted columns.
func ParseState(stage Stage, status Status) (State, error) {
	switch stage {
	case StageInitiator:
		if status == StatusSubmitted || status == StatusToCorrect {
			return State{stage, status}, nil
		}
	case StageAnalyst, StageChallenger, StageValidator, StageGeneralManager:
		if status == StatusInProgress {
			return State{stage, status}, nil
		}
	case StagePayment:
		if status == StatusValidated {
			return State{stage, status}, nil
		}
	case StageDone:
		if status == StatusPaid || status == StatusRejected || status == StatusCancelled {
			return State{stage, status}, nil
		}
	}
	return State{}, fmt.Errorf("inconsistent requisition state: stage %q with status %q", stage, status)
}

func (s State) Stage() Stage   { return s.stage }
func (s State) Status() Status { return s.status }

// IsZero reports whether s was never initialised.
func (s State) IsZero() bool { return s.stage == "" }

// IsTerminal reports whether no further workflow action may change the state.
func (s State) IsTerminal() bool { return s.stage == StageDone }

func (s State) String() string {
	return string(s.stage) + "/" + string(s.status)
}

// IsReviewStage reports whether stage is one of the reviewer stages.
func IsReviewStage(stage Stage) bool {
	for _, s := range ReviewStages {
		if s == stage {
			return true
		}
	}
	return false
}

// NextStage returns the stage following stage on the happy path.
func NextStage(stage Stage) (Stage, bool) {
	for i, s := range StageOrder {
		if s == stage && i+1 < len(StageOrder) {
			return StageOrder[i+1], true
		}
	}
	return "", false
}

// ParseStage validates a stage name.
func ParseStage(v string) (Stage, error) {
	for _, s := range StageOrder {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", v)
}
