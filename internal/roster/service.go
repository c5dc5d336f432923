package roster

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/invitation-letters/internal/types"
	"golang.org/x/sync/errgroup"
)

// Repository persists the roster and the invited list.
type Repository interface {
	ListEmployees(ctx context.Context) ([]types.Employee, error)
	UpsertEmployees(ctx context.Context, employees []types.Employee) error
	// ListInvited returns the invited employees in list order.
	ListInvited(ctx context.Context) ([]types.Employee, error)
	// SetInvited replaces the invited list with ids, in order.
	SetInvited(ctx context.Context, ids []int64) error
	Close()
}

// Service enforces the invited-list invariants on top of a Repository.
// Invited-list edits read the current list and write the whole list back, so
// they are serialized.
type Service struct {
	repo Repository
	mu   sync.Mutex
}

// NewService creates a Service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot loads the roster and the invited list concurrently.
func (s *Service) Snapshot(ctx context.Context) (types.Snapshot, error) {
	var snap types.Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		employees, err := s.repo.ListEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		snap.Roster = employees
		return nil
	})
	g.Go(func() error {
		invited, err := s.repo.ListInvited(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load invited list: %w", err)
		}
		snap.Invited = invited
		return nil
	})

	if err := g.Wait(); err != nil {
		return types.Snapshot{}, err
	}
	return snap, nil
}

// Roster returns all roster employees.
func (s *Service) Roster(ctx context.Context) ([]types.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

// Invited returns the invited list.
func (s *Service) Invited(ctx context.Context) ([]types.Employee, error) {
	return s.repo.ListInvited(ctx)
}

// ImportRoster upserts employees into the roster. Identifiers must be unique
// within the import.
func (s *Service) ImportRoster(ctx context.Context, employees []types.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]struct{}, len(employees))
	var dups []int64
	for _, e := range employees {
		if _, ok := seen[e.ID]; ok {
			dups = append(dups, e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
	}
	if len(dups) > 0 {
		return &DuplicateError{IDs: dups}
	}
	return s.repo.UpsertEmployees(ctx, employees)
}

// AddResult reports the outcome of AddInvited.
type AddResult struct {
	Added          []int64 `json:"added"`
	AlreadyInvited []int64 `json:"already_invited,omitempty"`
}

// AddInvited appends ids to the end of the invited list. Every id must be in
// the roster; ids already invited, or repeated, are reported and skipped.
func (s *Service) AddInvited(ctx context.Context, ids []int64) (*AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rosterIDs, invitedIDs, err := s.loadIDs(ctx)
	if err != nil {
		return nil, err
	}
	if missing := missingFrom(rosterIDs, ids); len(missing) > 0 {
		return nil, &NotInRosterError{IDs: missing}
	}

	present := make(map[int64]struct{}, len(invitedIDs)+len(ids))
	for _, id := range invitedIDs {
		present[id] = struct{}{}
	}

	result := &AddResult{}
	next := invitedIDs
	for _, id := range ids {
		if _, ok := present[id]; ok {
			result.AlreadyInvited = append(result.AlreadyInvited, id)
			continue
		}
		present[id] = struct{}{}
		next = append(next, id)
		result.Added = append(result.Added, id)
	}

	if len(result.Added) == 0 {
		return result, nil
	}
	if err := s.repo.SetInvited(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save invited list: %w", err)
	}
	return result, nil
}

// RemoveInvited removes ids from the invited list and returns how many were removed.
func (s *Service) RemoveInvited(ctx context.Context, ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, invitedIDs, err := s.loadIDs(ctx)
	if err != nil {
		return 0, err
	}

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	next := make([]int64, 0, len(invitedIDs))
	for _, id := range invitedIDs {
		if _, ok := drop[id]; !ok {
			next = append(next, id)
		}
	}

	removed := len(invitedIDs) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.repo.SetInvited(ctx, next); err != nil {
		return 0, fmt.Errorf("failed to save invited list: %w", err)
	}
	return removed, nil
}

// ReplaceInvited replaces the invited list with ids, dropping repeats. Every
// id must be in the roster. It returns the stored list.
func (s *Service) ReplaceInvited(ctx context.Context, ids []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rosterIDs, _, err := s.loadIDs(ctx)
	if err != nil {
		return nil, err
	}
	if missing := missingFrom(rosterIDs, ids); len(missing) > 0 {
		return nil, &NotInRosterError{IDs: missing}
	}

	next := dedupe(ids)
	if err := s.repo.SetInvited(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save invited list: %w", err)
	}
	return next, nil
}

// ClearInvited empties the invited list.
func (s *Service) ClearInvited(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SetInvited(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear invited list: %w", err)
	}
	return nil
}

// Search returns roster employees matching query, case-insensitively, on
// identifier, name, job title, post responsibility or location fields. An
// empty query matches everyone.
func (s *Service) Search(ctx context.Context, query string) ([]types.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(employees, query), nil
}

// Filter keeps the employees matching query. See Search.
func Filter(employees []types.Employee, query string) []types.Employee {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return employees
	}

	var out []types.Employee
	for _, e := range employees {
		fields := []string{
			strconv.FormatInt(e.ID, 10), e.FullName, e.JobTitle, e.PostResponsibility,
			e.WorkLocation, e.Division, e.City,
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (s *Service) loadIDs(ctx context.Context) (map[int64]struct{}, []int64, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	rosterIDs := make(map[int64]struct{}, len(snap.Roster))
	for _, e := range snap.Roster {
		rosterIDs[e.ID] = struct{}{}
	}
	invitedIDs := make([]int64, len(snap.Invited))
	for i, e := range snap.Invited {
		invitedIDs[i] = e.ID
	}
	return rosterIDs, invitedIDs, nil
}

func missingFrom(set map[int64]struct{}, ids []int64) []int64 {
	var missing []int64
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
