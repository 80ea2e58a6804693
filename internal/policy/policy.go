// Package policy maps (role, resource, operation) to allow or deny. It is
// one declarative table, independent of transport: the request layer never
// carries its own scope literals.
package policy

import (
	"github.com/enshire/job-board/internal/apperr"
)

type Role int

const (
	RolePublic Role = iota
	RoleAccount
	RoleAdmin
)

// Actor is the resolved caller: role tier, account identifier and whether
// the account belongs to the root admin group. Credential checking and
// session issuance happen outside the core.
type Actor struct {
	Role      Role
	AccountID string
	RootAdmin bool
}

type Resource string

const (
	ResourceListing     Resource = "job-listing"
	ResourceApplication Resource = "job-application"
)

type Operation string

const (
	OpRead         Operation = "read"
	OpList         Operation = "list"
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpDelete       Operation = "delete"
	OpAppendStatus Operation = "append-status"
)

type requirement struct {
	minRole     Role
	rootGroup   bool // also requires root admin group membership
	ownerScoped bool // record owner or admin, checked via AuthorizeOwner
}

var rules = map[Resource]map[Operation]requirement{
	ResourceListing: {
		OpRead:   {minRole: RolePublic},
		OpList:   {minRole: RolePublic},
		OpCreate: {minRole: RoleAdmin, rootGroup: true},
		OpUpdate: {minRole: RoleAdmin, rootGroup: true},
		OpDelete: {minRole: RoleAdmin, rootGroup: true},
	},
	ResourceApplication: {
		OpCreate:       {minRole: RolePublic},
		OpList:         {minRole: RoleAdmin},
		OpRead:         {minRole: RoleAccount, ownerScoped: true},
		OpUpdate:       {minRole: RoleAccount, ownerScoped: true},
		OpDelete:       {minRole: RoleAccount, ownerScoped: true},
		OpAppendStatus: {minRole: RoleAdmin},
	},
}

// Authorize is the role gate. It consults nothing but the table and the
// actor, so a denial here happens before any storage access. Unknown
// resource/operation pairs fail closed.
func Authorize(a Actor, res Resource, op Operation) error {
	req, ok := rules[res][op]
	if !ok {
		return apperr.ErrForbidden
	}
	if a.Role < req.minRole {
		return apperr.ErrForbidden
	}
	if req.rootGroup && !a.RootAdmin {
		return apperr.ErrForbidden
	}
	return nil
}

// OwnerScoped reports whether the operation additionally requires an
// ownership check against the fetched record.
func OwnerScoped(res Resource, op Operation) bool {
	return rules[res][op].ownerScoped
}

// AuthorizeOwner is the ownership gate for owner-scoped operations.
// Admins pass unconditionally; everyone else must own the record. An
// unowned record (empty ownerID) is reachable by admins only.
func AuthorizeOwner(a Actor, ownerID string) error {
	if a.Role >= RoleAdmin {
		return nil
	}
	if a.AccountID == "" || a.AccountID != ownerID {
		return apperr.ErrForbidden
	}
	return nil
}
