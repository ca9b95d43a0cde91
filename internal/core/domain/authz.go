package domain

// Actor is the authenticated identity attached to a request by the auth
// middleware. A nil *Actor means the request is anonymous.
type Actor struct {
	ID   int64
	Role string
}

// UserMutation describes the mutation an actor wants to perform on a user
// record, as far as the authorization policy cares about it.
type UserMutation struct {
	TargetID    int64
	ChangesRole bool
}

// AuthorizeUserMutation decides whether actor may update or delete the target
// user. Rules are evaluated in order and the first failing rule wins:
//
//  1. anonymous actor            → ErrUnauthenticated
//  2. not owner and not admin    → ErrNotOwner
//  3. role change without admin  → ErrRoleChangeNotAdmin
//
// Admins bypass ownership. Rule 3 only triggers for non-admins, so an admin
// changing anyone's role (their own included) is always permitted.
func AuthorizeUserMutation(actor *Actor, m UserMutation) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.ID != m.TargetID && actor.Role != RoleAdmin {
		return ErrNotOwner
	}
	if m.ChangesRole && actor.Role != RoleAdmin {
		return ErrRoleChangeNotAdmin
	}
	return nil
}
