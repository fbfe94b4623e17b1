package store

import "github.com/cacutler/recipearchive/internal/client/models"

// AuthState is a snapshot of the session. Token and Error are nil when
// absent.
type AuthState struct {
	IsAuthenticated bool
	User            *models.User
	Token           *string
	Loading         bool
	Error           *string
}

// AuthStore publishes the authentication session. It can only be changed
// through its methods.
type AuthStore struct {
	v *Value[AuthState]
}

func NewAuthStore() *AuthStore {
	return &AuthStore{v: NewValue(AuthState{})}
}

// Subscribe delivers the current state, then every change.
func (s *AuthStore) Subscribe(fn Listener[AuthState]) func() {
	return s.v.Subscribe(fn)
}

func (s *AuthStore) Get() AuthState {
	return s.v.Get()
}

// SetUser records a successful login. Loading and Error are kept.
func (s *AuthStore) SetUser(user models.User, token string) {
	s.v.Update(func(st AuthState) AuthState {
		st.IsAuthenticated = true
		st.User = &user
		st.Token = &token
		return st
	})
}

// ClearAuth resets the whole state to its initial value.
func (s *AuthStore) ClearAuth() {
	s.v.Set(AuthState{})
}

func (s *AuthStore) SetLoading(loading bool) {
	s.v.Update(func(st AuthState) AuthState {
		st.Loading = loading
		return st
	})
}

// SetError records msg; nil clears the error.
func (s *AuthStore) SetError(msg *string) {
	s.v.Update(func(st AuthState) AuthState {
		st.Error = copyString(msg)
		return st
	})
}

// UpdateUser replaces the user only; authentication and token are left as
// they are.
func (s *AuthStore) UpdateUser(user models.User) {
	s.v.Update(func(st AuthState) AuthState {
		st.User = &user
		return st
	})
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
