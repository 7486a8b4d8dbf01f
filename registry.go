package sockrelay

import "sync"

// Registry owns the two-way binding between user ids and live sessions.
// At most one session is bound to a user id at any instant, and at most one
// user id to a session. A later Register for the same user id overwrites the
// earlier binding; the old session's reverse entry is left behind until that
// session's own Remove fires.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session // user id -> live session
	users    map[string]string  // session id -> user id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: map[string]Session{},
		users:    map[string]string{},
	}
}

// Register binds userID to s, overwriting any earlier binding for userID.
// A session that re-joins under a different user id gives up its old one:
// the old forward entry is dropped so the session never holds two. Always
// succeeds.
func (r *Registry) Register(userID string, s Session) {
	r.mu.Lock()
	if prev, ok := r.users[s.ID()]; ok && prev != userID {
		if current, ok := r.sessions[prev]; ok && current.ID() == s.ID() {
			delete(r.sessions, prev)
		}
	}
	r.sessions[userID] = s
	r.users[s.ID()] = userID
	r.mu.Unlock()
}

// ResolveSession returns the session currently bound to userID.
func (r *Registry) ResolveSession(userID string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[userID]
	r.mu.RUnlock()
	return s, ok
}

// ResolveUser returns the user id bound to s.
func (r *Registry) ResolveUser(s Session) (string, bool) {
	r.mu.RLock()
	userID, ok := r.users[s.ID()]
	r.mu.RUnlock()
	return userID, ok
}

// Remove deletes the binding for s and returns the user id it was bound to.
// Removing a session that was never registered is a no-op. A session whose
// user id has since been rebound elsewhere only has its leftover reverse
// entry cleared; the newer binding stays and no user id is reported, so the
// caller won't announce an offline user who is still connected.
func (r *Registry) Remove(s Session) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.users[s.ID()]
	if !ok {
		return "", false
	}
	delete(r.users, s.ID())

	current, ok := r.sessions[userID]
	if !ok || current.ID() != s.ID() {
		return "", false
	}
	delete(r.sessions, userID)
	return userID, true
}

// Count returns the number of currently bound users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
