// Package workflow holds the requisition approval graph as data: which role may
// do what at each stage, and where every (stage, action) pair leads.
package workflow

import (
	"fmt"
	"sort"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// Edge is the outcome of an action taken at a stage.
type Edge struct {
	From   domain.Stage
	Action domain.ActionKind
	// Next is the resulting state. Ignored when Stay is true.
	Next domain.State
	// Stay keeps the current state untouched (comments).
	Stay bool
	// Pays marks the edge that settles the requisition out of the fund ledger.
	Pays bool
}

type edgeKey struct {
	stage  domain.Stage
	action domain.ActionKind
}

// RejectOutcome decides where a rejection at a given stage sends the requisition.
type RejectOutcome int

const (
	RejectTerminal RejectOutcome = iota
	RejectToCorrect
)

// Policy is the permission table plus the transition table.
type Policy struct {
	permissions     map[domain.Stage]map[domain.Role][]domain.ActionKind
	transitions     map[edgeKey]Edge
	rejectOutcomes  map[domain.Stage]RejectOutcome
	commentRequired map[domain.ActionKind]bool
}

var reviewActions = []domain.ActionKind{domain.ActionApprove, domain.ActionReject, domain.ActionComment}

// defaultPermissions is keyed by stage then role. The analyst entry at the
// initiator stage absorbs the department-head pre-approval; validator and pm at
// the challenger stage support single-level review chains.
func defaultPermissions() map[domain.Stage]map[domain.Role][]domain.ActionKind {
	return map[domain.Stage]map[domain.Role][]domain.ActionKind{
		domain.StageInitiator: {
			domain.RoleInitiator: {domain.ActionApprove, domain.ActionComment, domain.ActionCancel},
			domain.RoleAnalyst:   reviewActions,
		},
		domain.StageAnalyst: {
			domain.RoleAnalyst: reviewActions,
			domain.RoleSystem:  {domain.ActionApprove},
		},
		domain.StageChallenger: {
			domain.RoleChallenger: reviewActions,
			domain.RoleValidator:  reviewActions,
			domain.RolePM:         reviewActions,
			domain.RoleSystem:     {domain.ActionApprove},
		},
		domain.StageValidator: {
			domain.RoleValidator: reviewActions,
			domain.RolePM:        reviewActions,
			domain.RoleSystem:    {domain.ActionApprove},
		},
		domain.StageGeneralManager: {
			domain.RoleGM:     reviewActions,
			domain.RoleSystem: {domain.ActionApprove},
		},
		domain.StagePayment: {
			domain.RoleAccountant: reviewActions,
		},
	}
}

// NewPolicy builds the default tables. Stages listed in toCorrect send rejections
// back to the initiator instead of closing the requisition.
func NewPolicy(toCorrect ...domain.Stage) *Policy {
	outcomes := make(map[domain.Stage]RejectOutcome)
	for _, s := range toCorrect {
		outcomes[s] = RejectToCorrect
	}
	p := &Policy{
		permissions:    defaultPermissions(),
		rejectOutcomes: outcomes,
		commentRequired: map[domain.ActionKind]bool{
			domain.ActionReject: true,
			domain.ActionCancel: true,
		},
	}
	p.transitions = p.buildTransitions()
	return p
}

// DefaultPolicy rejects terminally at every stage.
func DefaultPolicy() *Policy {
	return NewPolicy()
}

func (p *Policy) buildTransitions() map[edgeKey]Edge {
	t := make(map[edgeKey]Edge)
	add := func(e Edge) { t[edgeKey{e.From, e.Action}] = e }

	analyst, _ := domain.InReview(domain.StageAnalyst)
	challenger, _ := domain.InReview(domain.StageChallenger)
	validator, _ := domain.InReview(domain.StageValidator)
	gm, _ := domain.InReview(domain.StageGeneralManager)

	// approve walks the happy path one stage at a time
	add(Edge{From: domain.StageInitiator, Action: domain.ActionApprove, Next: analyst})
	add(Edge{From: domain.StageAnalyst, Action: domain.ActionApprove, Next: challenger})
	add(Edge{From: domain.StageChallenger, Action: domain.ActionApprove, Next: validator})
	add(Edge{From: domain.StageValidator, Action: domain.ActionApprove, Next: gm})
	add(Edge{From: domain.StageGeneralManager, Action: domain.ActionApprove, Next: domain.AwaitingPayment()})
	add(Edge{From: domain.StagePayment, Action: domain.ActionApprove, Next: domain.Paid(), Pays: true})

	add(Edge{From: domain.StageInitiator, Action: domain.ActionCancel, Next: domain.Cancelled()})

	for _, s := range []domain.Stage{domain.StageInitiator, domain.StageAnalyst, domain.StageChallenger, domain.StageValidator, domain.StageGeneralManager, domain.StagePayment} {
		next := domain.Rejected()
		if p.rejectOutcomes[s] == RejectToCorrect {
			next = domain.ToCorrect()
		}
		add(Edge{From: s, Action: domain.ActionReject, Next: next})
		add(Edge{From: s, Action: domain.ActionComment, Stay: true})
	}
	return t
}

// RejectOutcomeAt reports the configured rejection outcome of a stage.
func (p *Policy) RejectOutcomeAt(stage domain.Stage) RejectOutcome {
	return p.rejectOutcomes[stage]
}

// RequiresComment reports whether action needs a non-empty comment.
func (p *Policy) RequiresComment(action domain.ActionKind) bool {
	return p.commentRequired[action]
}

// Allowed reports whether role may perform action at stage according to the permission table.
func (p *Policy) Allowed(stage domain.Stage, role domain.Role, action domain.ActionKind) bool {
	for _, a := range p.permissions[stage][role] {
		if a == action {
			return true
		}
	}
	return false
}

// RolesFor lists the roles allowed to act at stage, sorted.
func (p *Policy) RolesFor(stage domain.Stage) []domain.Role {
	roles := make([]domain.Role, 0, len(p.permissions[stage]))
	for r := range p.permissions[stage] {
		if r == domain.RoleSystem {
			continue
		}
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Decide checks that actor may perform action on a requisition in state and
// returns the edge to follow. It never looks at ownership; callers enforce that.
func (p *Policy) Decide(state domain.State, actor domain.Actor, action domain.ActionKind) (Edge, error) {
	if state.IsZero() {
		return Edge{}, apperrors.NewInvalidTransitionError("requisition has no state")
	}

	if action == domain.ActionPay {
		if state.Stage() != domain.StagePayment {
			return Edge{}, apperrors.NewInvalidTransitionError(fmt.Sprintf("pay is only possible at stage %s, requisition is %s", domain.StagePayment, state))
		}
		action = domain.ActionApprove
	}

	if state.IsTerminal() {
		if actor.IsAdmin() && action == domain.ActionComment {
			return Edge{From: state.Stage(), Action: action, Stay: true}, nil
		}
		return Edge{}, apperrors.NewInvalidTransitionError(fmt.Sprintf("requisition is closed (%s)", state))
	}

	if !actor.IsAdmin() && !p.Allowed(state.Stage(), actor.Role, action) {
		return Edge{}, apperrors.NewPermissionDeniedError(fmt.Sprintf("role %q may not %s at stage %s", actor.Role, action, state.Stage()))
	}

	edge, ok := p.transitions[edgeKey{state.Stage(), action}]
	if !ok {
		return Edge{}, apperrors.NewInvalidTransitionError(fmt.Sprintf("action %s is not possible at stage %s", action, state.Stage()))
	}
	return edge, nil
}

// Edges returns every transition of the graph, ordered by stage then action.
func (p *Policy) Edges() []Edge {
	order := make(map[domain.Stage]int, len(domain.StageOrder))
	for i, s := range domain.StageOrder {
		order[s] = i
	}
	edges := make([]Edge, 0, len(p.transitions))
	for _, e := range p.transitions {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return order[edges[i].From] < order[edges[j].From]
		}
		return edges[i].Action < edges[j].Action
	})
	return edges
}

// CanReach reports whether a single transition leads from stage from to stage to.
func (p *Policy) CanReach(from, to domain.Stage) bool {
	for _, e := range p.transitions {
		if e.From != from {
			continue
		}
		if e.Stay && from == to {
			return true
		}
		if !e.Stay && e.Next.Stage() == to {
			return true
		}
	}
	return false
}
