package dto

import (
	"time"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// ActionRequest is the body of PUT /requisitions/{id}/action.
type ActionRequest struct {
	Action      string              `json:"action" binding:"required,oneof=approve reject comment pay cancel"`
	Comment     string              `json:"commentaire"`
	PaymentMode *domain.PaymentMode `json:"mode_paiement,omitempty" binding:"omitempty,oneof=cash bank"`
}

// ActionResponse is returned after a successful transition.
type ActionResponse struct {
	StageAfter  domain.Stage              `json:"niveauApres"`
	StatusAfter domain.Status             `json:"statutApres"`
	ActionID    string                    `json:"action_id"`
	Budget      *domain.BudgetCheckResult `json:"budget,omitempty"`
}

// ActionRecordResponse is one entry of a requisition's action log.
type ActionRecordResponse struct {
	ActionID     string            `json:"id"`
	UserID       string            `json:"utilisateur_id"`
	Role         domain.Role       `json:"role"`
	Action       domain.ActionKind `json:"action"`
	Comment      string            `json:"commentaire"`
	StageBefore  domain.Stage      `json:"niveauAvant"`
	StageAfter   domain.Stage      `json:"niveauApres"`
	StatusBefore domain.Status     `json:"statutAvant"`
	StatusAfter  domain.Status     `json:"statutApres"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ToActionResponse converts a transition result.
func ToActionResponse(res *domain.TransitionResult) ActionResponse {
	return ActionResponse{
		StageAfter:  res.Record.StageAfter,
		StatusAfter: res.Record.StatusAfter,
		ActionID:    res.Record.ActionID,
		Budget:      res.Budget,
	}
}

// ToActionRecordResponses converts an action log.
func ToActionRecordResponses(records []domain.ActionRecord) []ActionRecordResponse {
	out := make([]ActionRecordResponse, len(records))
	for i, a := range records {
		out[i] = ActionRecordResponse{
			ActionID:     a.ActionID,
			UserID:       a.UserID,
			Role:         a.Role,
			Action:       a.Action,
			Comment:      a.Comment,
			StageBefore:  a.StageBefore,
			StageAfter:   a.StageAfter,
			StatusBefore: a.StatusBefore,
			StatusAfter:  a.StatusAfter,
			CreatedAt:    a.CreatedAt,
		}
	}
	return out
}
