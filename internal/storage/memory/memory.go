// Package memory implements the storage interfaces in process memory.
// It backs the handler tests and mirrors the mongo implementation's
// semantics: date-descending sorts, stable order for ties, independent
// count reads and $set-style partial updates.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/models"
	"spendly-api/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]*models.User
	teams    map[primitive.ObjectID]*models.Team
	expenses []*models.Expense

	personal     *docCollection
	teamExpenses *docCollection
}

func New() *Store {
	return &Store{
		users:        make(map[primitive.ObjectID]*models.User),
		teams:        make(map[primitive.ObjectID]*models.Team),
		personal:     &docCollection{},
		teamExpenses: &docCollection{},
	}
}

func (s *Store) Users() storage.UserStore                { return s }
func (s *Store) Teams() storage.TeamStore                { return s }
func (s *Store) Expenses() storage.ExpenseStore          { return s }
func (s *Store) PersonalExpenses() storage.DocumentStore { return s.personal }
func (s *Store) TeamExpenses() storage.DocumentStore     { return s.teamExpenses }

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Teams == nil {
		user.Teams = []primitive.ObjectID{}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyUser(user), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) AddTeam(ctx context.Context, userID, teamID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	user.Teams = append(user.Teams, teamID)
	return nil
}

func (s *Store) RemoveTeam(ctx context.Context, userID, teamID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	teams := user.Teams[:0]
	for _, id := range user.Teams {
		if id != teamID {
			teams = append(teams, id)
		}
	}
	user.Teams = teams
	return nil
}

// Teams

func (s *Store) CreateTeam(ctx context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	clone := copyTeam(team)
	s.teams[team.ID] = clone
	return nil
}

func (s *Store) GetTeam(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyTeam(team), nil
}

func (s *Store) ListTeamsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := []models.Team{}
	for _, team := range s.teams {
		if team.HasMember(userID) {
			teams = append(teams, *copyTeam(team))
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].CreatedAt.Before(teams[j].CreatedAt) })
	return teams, nil
}

func (s *Store) UpdateTeam(ctx context.Context, id primitive.ObjectID, patch models.TeamPatch) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if patch.Name != nil {
		team.Name = *patch.Name
	}
	if patch.Description != nil {
		team.Description = *patch.Description
	}
	if patch.Budget != nil {
		team.Budget = *patch.Budget
	}
	return copyTeam(team), nil
}

func (s *Store) SetTeamMembers(ctx context.Context, id primitive.ObjectID, members []models.TeamMember) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	team.Members = append([]models.TeamMember{}, members...)
	return copyTeam(team), nil
}

// Expenses

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expense.ID.IsZero() {
		expense.ID = primitive.NewObjectID()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	if expense.Status == "" {
		expense.Status = models.StatusPending
	}
	clone := *expense
	s.expenses = append(s.expenses, &clone)
	return nil
}

func (s *Store) GetExpense(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.expenses {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListExpensesForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expenses := []models.Expense{}
	for _, e := range s.expenses {
		if e.User == userID {
			expenses = append(expenses, *e)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

func (s *Store) ReplaceExpense(ctx context.Context, id primitive.ObjectID, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			clone := *expense
			clone.ID = id
			s.expenses[i] = &clone
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) DeleteExpense(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func copyUser(u *models.User) *models.User {
	clone := *u
	clone.Teams = append([]primitive.ObjectID{}, u.Teams...)
	return &clone
}

func copyTeam(t *models.Team) *models.Team {
	clone := *t
	clone.Members = append([]models.TeamMember{}, t.Members...)
	return &clone
}
