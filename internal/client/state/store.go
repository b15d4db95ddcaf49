// Package state holds the client's mirror of server resources. Each remote
// slice carries a pending/fulfilled/rejected lifecycle: actions set the
// loading flag, run the request, then merge the result or record the error.
// The view layer renders purely from snapshots and owns no server data.
package state

import (
	"context"
	"errors"
	"strings"
	"sync"

	apiclient "github.com/jobdeck/jobdeck/pkg/api/client"
)

// Remote carries the shared request lifecycle flags of a server-backed
// slice.
type Remote struct {
	IsLoading bool
	Error     string
}

// AuthState mirrors the session: who is logged in and the bearer token.
type AuthState struct {
	Remote
	Name     string
	Token    string
	LoggedIn bool
}

// JobsState mirrors the jobs collection and its per-status counts.
type JobsState struct {
	Remote
	Jobs  []apiclient.Job
	Stats []apiclient.StatusCount
}

// UIState is local-only view state. It is never sent to the server.
type UIState struct {
	Theme        string
	Search       string
	StatusFilter string
	SelectedID   string
}

// Snapshot is an immutable copy of the whole store.
type Snapshot struct {
	Auth AuthState
	Jobs JobsState
	UI   UIState
}

// Store is the remote-state cache. Concurrent actions on the same slice
// share one loading flag; the last resolved response wins.
type Store struct {
	mu   sync.Mutex
	api  *apiclient.Client
	auth AuthState
	jobs JobsState
	ui   UIState
	subs map[int]func(Snapshot)
	next int
}

// New constructs a Store over the given API client.
func New(api *apiclient.Client) *Store {
	return &Store{
		api:  api,
		ui:   UIState{Theme: "light"},
		subs: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Auth: s.auth, Jobs: s.jobs, UI: s.ui}
	snap.Jobs.Jobs = append([]apiclient.Job(nil), s.jobs.Jobs...)
	snap.Jobs.Stats = append([]apiclient.StatusCount(nil), s.jobs.Stats...)
	return snap
}

// Subscribe registers fn for every state transition and returns an
// unsubscribe func.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap)
	}
}

// RestoreSession seeds auth state from a persisted token without a request.
func (s *Store) RestoreSession(name, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{Name: name, Token: token, LoggedIn: token != ""}
	s.notifyLocked()
}

// Login runs the login action through the full lifecycle.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.beginAuth()
	resp, err := s.api.Login(ctx, email, password)
	return s.resolveAuth(resp, err)
}

// Register runs the register action; a successful registration also logs in.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	s.beginAuth()
	resp, err := s.api.Register(ctx, name, email, password)
	return s.resolveAuth(resp, err)
}

// Logout clears the session locally. The server keeps no session state, so
// nothing is sent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{}
	s.jobs = JobsState{}
	s.notifyLocked()
}

func (s *Store) beginAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.IsLoading = true
	s.auth.Error = ""
	s.notifyLocked()
}

func (s *Store) resolveAuth(resp *apiclient.AuthResponse, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.IsLoading = false
	if err != nil {
		s.auth.Error = errorMessage(err)
		s.notifyLocked()
		return err
	}
	s.auth.Error = ""
	s.auth.Name = resp.User.Name
	s.auth.Token = resp.Token
	s.auth.LoggedIn = true
	s.notifyLocked()
	return nil
}

// FetchJobs refreshes the jobs collection.
func (s *Store) FetchJobs(ctx context.Context) error {
	token := s.beginJobs()
	list, err := s.api.ListJobs(ctx, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = false
	if err != nil {
		s.jobs.Error = errorMessage(err)
		s.notifyLocked()
		return err
	}
	s.jobs.Error = ""
	s.jobs.Jobs = list.Jobs
	s.notifyLocked()
	return nil
}

// FetchStats refreshes the per-status counts.
func (s *Store) FetchStats(ctx context.Context) error {
	token := s.beginJobs()
	stats, err := s.api.JobStats(ctx, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = false
	if err != nil {
		s.jobs.Error = errorMessage(err)
		s.notifyLocked()
		return err
	}
	s.jobs.Error = ""
	s.jobs.Stats = stats
	s.notifyLocked()
	return nil
}

// GetJob fetches a single job and merges it into the cached collection.
func (s *Store) GetJob(ctx context.Context, id string) (*apiclient.Job, error) {
	token := s.beginJobs()
	found, err := s.api.GetJob(ctx, token, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = false
	if err != nil {
		s.jobs.Error = errorMessage(err)
		s.notifyLocked()
		return nil, err
	}
	s.jobs.Error = ""
	merged := false
	for i := range s.jobs.Jobs {
		if s.jobs.Jobs[i].ID == found.ID {
			s.jobs.Jobs[i] = *found
			merged = true
			break
		}
	}
	if !merged {
		s.jobs.Jobs = append(s.jobs.Jobs, *found)
	}
	s.notifyLocked()
	return found, nil
}

// CreateJob stores a job and merges it into the cached collection.
func (s *Store) CreateJob(ctx context.Context, in apiclient.JobInput) (*apiclient.Job, error) {
	token := s.beginJobs()
	created, err := s.api.CreateJob(ctx, token, in)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = false
	if err != nil {
		s.jobs.Error = errorMessage(err)
		s.notifyLocked()
		return nil, err
	}
	s.jobs.Error = ""
	s.jobs.Jobs = append([]apiclient.Job{*created}, s.jobs.Jobs...)
	s.notifyLocked()
	return created, nil
}

// UpdateJob updates a job and merges the stored record back in place.
func (s *Store) UpdateJob(ctx context.Context, id string, in apiclient.JobInput) (*apiclient.Job, error) {
	token := s.beginJobs()
	updated, err := s.api.UpdateJob(ctx, token, id, in)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = false
	if err != nil {
		s.jobs.Error = errorMessage(err)
		s.notifyLocked()
		return nil, err
	}
	s.jobs.Error = ""
	for i := range s.jobs.Jobs {
		if s.jobs.Jobs[i].ID == updated.ID {
			s.jobs.Jobs[i] = *updated
			break
		}
	}
	s.notifyLocked()
	return updated, nil
}

// DeleteJob removes a job from the server and the cache.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	token := s.beginJobs()
	err := s.api.DeleteJob(ctx, token, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = false
	if err != nil {
		s.jobs.Error = errorMessage(err)
		s.notifyLocked()
		return err
	}
	s.jobs.Error = ""
	kept := s.jobs.Jobs[:0]
	for _, j := range s.jobs.Jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	s.jobs.Jobs = kept
	if s.ui.SelectedID == id {
		s.ui.SelectedID = ""
	}
	s.notifyLocked()
	return nil
}

func (s *Store) beginJobs() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.IsLoading = true
	s.jobs.Error = ""
	s.notifyLocked()
	return s.auth.Token
}

// SetTheme records the UI theme. Persisting it is the caller's concern; it
// never reaches the server.
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.Theme = theme
	s.notifyLocked()
}

// SetSearch records the search text filter.
func (s *Store) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.Search = text
	s.notifyLocked()
}

// SetStatusFilter records the status filter; empty means all.
func (s *Store) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.StatusFilter = status
	s.notifyLocked()
}

// SelectJob records the selected job id.
func (s *Store) SelectJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.SelectedID = id
	s.notifyLocked()
}

// VisibleJobs applies the UI search and status filters to the cached
// collection.
func (s *Store) VisibleJobs() []apiclient.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(s.ui.Search))
	out := make([]apiclient.Job, 0, len(s.jobs.Jobs))
	for _, j := range s.jobs.Jobs {
		if s.ui.StatusFilter != "" && j.Status != s.ui.StatusFilter {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(j.Company), search) &&
			!strings.Contains(strings.ToLower(j.Position), search) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func errorMessage(err error) string {
	var apiErr apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
