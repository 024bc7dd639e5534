// Package policy decides whether an actor may perform an action on a
// resource. Services call Enforce before any mutation; HTTP middleware only
// establishes who the actor is.
package policy

import (
	"fmt"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/types"
)

// Actor is the authenticated principal behind a request
type Actor struct {
	ID   string
	Name string
	Role database.UserRole
}

// IsAdmin reports whether the actor holds the ADMIN role
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == database.RoleAdmin
}

// Action is a verb a service performs on a resource
type Action string

const (
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionSyncRelations Action = "sync-relations"
	ActionUpsert        Action = "upsert"
	ActionUpload        Action = "upload"
)

// Kind identifies the resource type an action targets
type Kind string

const (
	KindFilm    Kind = "film"
	KindGenre   Kind = "genre"
	KindPerson  Kind = "person"
	KindReview  Kind = "review"
	KindComment Kind = "comment"
	KindFile    Kind = "file"
)

// Resource is the target of an action. OwnerID is set for owned resources.
type Resource struct {
	Kind    Kind
	ID      string
	OwnerID string
}

// Decision is the outcome of Authorize
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(format string, args ...interface{}) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Authorize applies the catalog's permission table.
func Authorize(actor *Actor, action Action, resource Resource) Decision {
	if actor == nil {
		return deny("authentication required")
	}

	switch resource.Kind {
	case KindFilm, KindGenre, KindPerson, KindReview, KindFile:
		if actor.IsAdmin() {
			return allow()
		}
		return deny("%s %s requires the ADMIN role", resource.Kind, action)

	case KindComment:
		switch action {
		case ActionCreate:
			return allow()
		case ActionDelete:
			if actor.IsAdmin() || (resource.OwnerID != "" && resource.OwnerID == actor.ID) {
				return allow()
			}
			return deny("You can only delete your own comments")
		}
		return deny("comment %s is not supported", action)
	}

	return deny("unknown resource kind %q", resource.Kind)
}

// Enforce returns nil when the action is allowed. Otherwise it returns an
// UNAUTHORIZED error for anonymous actors and FORBIDDEN for everyone else.
func Enforce(actor *Actor, action Action, resource Resource) error {
	d := Authorize(actor, action, resource)
	if d.Allowed {
		return nil
	}
	if actor == nil {
		return types.NewUnauthorizedError(d.Reason)
	}
	return types.NewForbiddenError(d.Reason).
		WithContext("action", string(action)).
		WithContext("resource", string(resource.Kind))
}
