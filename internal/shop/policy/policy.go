// Package policy decides whether a principal may perform an action on a resource.
//
// A Policy is evaluated in two phases. Authorize runs before the resource is
// loaded and only looks at the principal. AuthorizeObject runs once the
// resource is known and may compare its author with the principal.
package policy

import (
	"github.com/google/uuid"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

// Action is the kind of operation being attempted.
type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
)

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Rule is one permission check. Either phase may be nil.
type Rule struct {
	Name   string
	Access func(p auth.Principal, action Action) error
	Object func(p auth.Principal, action Action, author uuid.UUID) error
}

// Policy is an ordered list of rules; the first failing rule wins.
type Policy []Rule

// AuthenticatedOrReadOnly lets anyone read and requires authentication for writes.
var AuthenticatedOrReadOnly = Rule{
	Name: "authenticated_or_read_only",
	Access: func(p auth.Principal, action Action) error {
		if action == Read || p.IsAuthenticated() {
			return nil
		}
		return shoperrors.ErrUnauthorized
	},
}

// Authenticated requires an authenticated principal for every action.
var Authenticated = Rule{
	Name: "authenticated",
	Access: func(p auth.Principal, _ Action) error {
		if p.IsAuthenticated() {
			return nil
		}
		return shoperrors.ErrUnauthorized
	},
}

// AuthorOnly restricts update and delete to the resource author.
var AuthorOnly = Rule{
	Name: "author_only",
	Object: func(p auth.Principal, action Action, author uuid.UUID) error {
		if action != Update && action != Delete {
			return nil
		}
		if !p.IsAuthenticated() {
			return shoperrors.ErrUnauthorized
		}
		if author != p.UserID {
			return shoperrors.ErrForbidden
		}
		return nil
	},
}

var (
	Products     = Policy{AuthenticatedOrReadOnly, AuthorOnly}
	Categories   = Policy{AuthenticatedOrReadOnly}
	Comments     = Policy{Authenticated, AuthorOnly}
	Interactions = Policy{Authenticated}
)

// Authorize runs the principal-only phase.
func (pol Policy) Authorize(p auth.Principal, action Action) error {
	for _, r := range pol {
		if r.Access == nil {
			continue
		}
		if err := r.Access(p, action); err != nil {
			return err
		}
	}
	return nil
}

// AuthorizeObject runs both phases against a loaded resource.
func (pol Policy) AuthorizeObject(p auth.Principal, action Action, author uuid.UUID) error {
	if err := pol.Authorize(p, action); err != nil {
		return err
	}
	for _, r := range pol {
		if r.Object == nil {
			continue
		}
		if err := r.Object(p, action, author); err != nil {
			return err
		}
	}
	return nil
}
