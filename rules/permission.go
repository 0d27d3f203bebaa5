package rules

import "time"

// Decision is a permission outcome with a human-readable reason.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// Err converts a denial into a PermissionError.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &PermissionError{Reason: d.Reason}
}

type Action string

const (
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionEdit        Action = "edit"
	ActionDelete      Action = "delete"
	ActionCancel      Action = "cancel"
	ActionViewMetrics Action = "view_metrics"
	ActionEditRules   Action = "edit_rules"
)

type ResourceKind string

const (
	KindMenu        ResourceKind = "menu"
	KindReview      ResourceKind = "review"
	KindReservation ResourceKind = "reservation"
	KindPayment     ResourceKind = "payment"
	KindClient      ResourceKind = "client"
	KindVenue       ResourceKind = "venue"
	KindRules       ResourceKind = "rules"
)

const (
	reviewEditWindowDays   = 7
	reviewDeleteWindowDays = 30
	positiveReviewRating   = 4
)

// Resource describes the record an action targets. OwnerID is the user that
// created or owns it; zero means no owner. Rating and CreatedAt are only
// read for reviews.
type Resource struct {
	Kind      ResourceKind
	OwnerID   uint
	Rating    int
	CreatedAt time.Time
}

// Request is one permission question.
type Request struct {
	Action   Action
	Role     Role
	Resource Resource
	CallerID uint
	Now      time.Time
}

func (r Request) isOwner() bool {
	return r.CallerID != 0 && r.Resource.OwnerID == r.CallerID
}

// Evaluator answers permission requests from a fixed table.
//
// StrictRulesEditor limits edit_rules to the admin role alone, excluding
// superadmin. It exists to reproduce a legacy rule and is off by default.
type Evaluator struct {
	StrictRulesEditor bool
}

func (e Evaluator) Can(req Request) bool { return e.Decide(req).Allowed }

func (e Evaluator) Decide(req Request) Decision {
	if req.Role == RoleNone {
		return deny("authentication required")
	}
	switch req.Resource.Kind {
	case KindMenu:
		return e.menu(req)
	case KindReview:
		return e.review(req)
	case KindRules:
		return e.rules(req)
	case KindReservation:
		if req.Action == ActionCancel {
			if req.isOwner() || req.Role.AtLeast(RoleAdmin) {
				return allow("owner or administrator")
			}
			return deny("only the owner or an administrator can cancel")
		}
		if req.Action == ActionCreate {
			return allow("authenticated")
		}
		return e.generic(req)
	case KindPayment:
		if req.Action == ActionView && !req.Role.AtLeast(RoleAdmin) {
			return deny("payments are restricted to administrators")
		}
		return e.generic(req)
	case KindClient, KindVenue:
		return e.generic(req)
	}
	return deny("unknown resource")
}

func (e Evaluator) menu(req Request) Decision {
	switch req.Action {
	case ActionView:
		return allow("authenticated")
	case ActionCreate:
		// client is the read-only tier
		if req.Role.AtLeast(RoleAdmin) {
			return allow("administrator")
		}
		return deny("clients cannot create menus")
	case ActionEdit:
		if req.Role.AtLeast(RoleAdmin) {
			return allow("administrator")
		}
		if req.isOwner() {
			return allow("menu owner")
		}
		return deny("no permission to edit this menu")
	case ActionDelete:
		// owners below staff level cannot delete; the lowest staff level is admin
		if req.Role.AtLeast(RoleAdmin) {
			return allow("administrator")
		}
		return deny("no permission to delete this menu")
	case ActionViewMetrics:
		if req.Role.AtLeast(RoleAdmin) {
			return allow("administrator")
		}
		return deny("metrics are restricted to administrators")
	case ActionEditRules:
		return e.rules(Request{Action: ActionEdit, Role: req.Role, Resource: Resource{Kind: KindRules}})
	}
	return deny("unsupported action")
}

func (e Evaluator) rules(req Request) Decision {
	switch req.Action {
	case ActionView:
		return allow("authenticated")
	case ActionEdit, ActionEditRules:
		if e.StrictRulesEditor {
			if req.Role == RoleAdmin {
				return allow("admin")
			}
			return deny("only admin can edit business rules")
		}
		if req.Role.AtLeast(RoleAdmin) {
			return allow("administrator")
		}
		return deny("only administrators can edit business rules")
	}
	return deny("unsupported action")
}

func (e Evaluator) review(req Request) Decision {
	age := req.Now.Sub(req.Resource.CreatedAt).Hours() / 24
	super := req.Role == RoleSuperAdmin
	switch req.Action {
	case ActionView, ActionCreate:
		return allow("authenticated")
	case ActionDelete:
		if req.Resource.Rating >= positiveReviewRating && !super {
			return deny("only superadmin can delete positive reviews")
		}
		if age > reviewDeleteWindowDays && !super {
			return deny("reviews older than 30 days cannot be deleted")
		}
	case ActionEdit:
		if age > reviewEditWindowDays && !super {
			return deny("only reviews newer than 7 days can be edited")
		}
	default:
		return e.generic(req)
	}
	if req.Role.AtLeast(RoleAdmin) {
		return allow("allowed")
	}
	return deny("insufficient permissions")
}

// generic covers resources without special rules: anyone signed in can view,
// administrators can change.
func (e Evaluator) generic(req Request) Decision {
	if req.Action == ActionView {
		return allow("authenticated")
	}
	if req.Role.AtLeast(RoleAdmin) {
		return allow("administrator")
	}
	return deny("insufficient permissions")
}
