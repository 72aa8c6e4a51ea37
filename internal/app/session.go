package app

import (
	"crypto/subtle"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

// Settings returns the current site settings, credentials included.
func (s *ContentStore) Settings() domain.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// UpdateSettings merges patch into the settings. Nested blocks are merged
// key by key. The settings record always exists, so this always saves.
func (s *ContentStore) UpdateSettings(patch domain.SettingsPatch) error {
	_, err := s.mutate("update settings", func(st *domain.State) (Outcome, error) {
		st.Settings = patch.Apply(st.Settings)
		return Applied, nil
	})
	return err
}

// Session returns a copy of the admin session, or nil when logged out.
func (s *ContentStore) Session() *domain.AdminSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Admin == nil {
		return nil
	}
	a := *s.state.Admin
	return &a
}

// Authenticated reports whether an admin is logged in.
func (s *ContentStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Admin != nil && s.state.Admin.IsAuthenticated
}

// SessionEpoch changes on every successful login and every logout. Callers
// that cache an admin identity compare it to tell one login from the next.
func (s *ContentStore) SessionEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Login compares email and password byte for byte with the configured admin
// credentials. On a match the session is set and saved; on a mismatch the
// current session is left as it is and false is returned. The error is
// non-nil only when the session could not be saved.
func (s *ContentStore) Login(email, password string) (bool, error) {
	outcome, err := s.mutate("login", func(st *domain.State) (Outcome, error) {
		creds := st.Settings.AdminCredentials
		if email == "" || password == "" {
			return NotFound, nil
		}
		emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(creds.Email)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
		if !emailOK || !passOK {
			return NotFound, nil
		}
		st.Admin = &domain.AdminSession{Email: email, IsAuthenticated: true}
		return Applied, nil
	})
	return outcome == Applied, err
}

// Logout clears the admin session and saves.
func (s *ContentStore) Logout() error {
	_, err := s.mutate("logout", func(st *domain.State) (Outcome, error) {
		st.Admin = nil
		s.epoch++
		return Applied, nil
	})
	return err
}
