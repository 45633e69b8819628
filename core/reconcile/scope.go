package reconcile

import "context"

// ScopePolicy decides what an empty location scope means.
type ScopePolicy string

const (
	// ScopeUnrestricted treats an empty scope as access to every location.
	ScopeUnrestricted ScopePolicy = "unrestricted"
	// ScopeDeny treats an empty scope as access to no location.
	ScopeDeny ScopePolicy = "deny"
)

// Grant is the location access of an actor: every location, or the listed ones.
// A Grant that is neither All nor lists locations is decided by the ScopePolicy.
type Grant struct {
	All       bool
	Locations []uint
}

// ScopeResolver returns the location access of an actor acting in a role.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, userID, roleID uint) (Grant, error)
}

// Scope is the resolved location scope of one batch.
type Scope struct {
	all  bool
	ids  map[uint]struct{}
	deny bool
}

// NewScope builds a batch scope from grant. policy only applies when the grant
// is neither unrestricted nor lists any location.
func NewScope(grant Grant, policy ScopePolicy) Scope {
	s := Scope{all: grant.All, ids: make(map[uint]struct{}, len(grant.Locations))}
	for _, id := range grant.Locations {
		s.ids[id] = struct{}{}
	}
	if !s.all && len(s.ids) == 0 {
		s.all = policy != ScopeDeny
		s.deny = policy == ScopeDeny
	}
	return s
}

// Restricted reports whether any location check can fail.
func (s Scope) Restricted() bool {
	return !s.all
}

// Allows reports whether location id is in scope.
func (s Scope) Allows(id uint) bool {
	if s.all {
		return true
	}
	if s.deny {
		return false
	}
	_, ok := s.ids[id]
	return ok
}
