package db

import (
	"context"
	"sync"

	"treelot/pkg/core/model"
)

// MemoryHouseholdStore is the in-memory reference implementation of
// HouseholdStore.
type MemoryHouseholdStore struct {
	mu         sync.Mutex
	households map[model.HouseholdID]model.Household
}

func NewMemoryHouseholdStore(initial ...model.Household) *MemoryHouseholdStore {
	s := &MemoryHouseholdStore{households: make(map[model.HouseholdID]model.Household)}
	for _, h := range initial {
		s.households[h.ID] = h
	}
	return s
}

func (s *MemoryHouseholdStore) GetHousehold(_ context.Context, id model.HouseholdID) (model.Household, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.households[id]
	if !ok {
		return model.Household{}, model.ErrHouseholdNotFound
	}
	return h, nil
}

func (s *MemoryHouseholdStore) ListHouseholds(_ context.Context) ([]model.Household, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Household, 0, len(s.households))
	for _, h := range s.households {
		out = append(out, h)
	}
	return out, nil
}

func (s *MemoryHouseholdStore) CreateHousehold(_ context.Context, h model.Household) (model.HouseholdID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.households[h.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	s.households[h.ID] = h
	return h.ID, nil
}

func (s *MemoryHouseholdStore) UpdateHousehold(_ context.Context, h model.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.households[h.ID]; !exists {
		return model.ErrHouseholdNotFound
	}
	s.households[h.ID] = h
	return nil
}

// MemorySeasonStore is the in-memory reference implementation of SeasonStore.
type MemorySeasonStore struct {
	mu      sync.Mutex
	seasons map[model.SeasonID]model.Season
}

func NewMemorySeasonStore(initial ...model.Season) *MemorySeasonStore {
	s := &MemorySeasonStore{seasons: make(map[model.SeasonID]model.Season)}
	for _, season := range initial {
		s.seasons[season.ID] = season
	}
	return s
}

func (s *MemorySeasonStore) GetSeason(_ context.Context, id model.SeasonID) (model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	season, ok := s.seasons[id]
	if !ok {
		return model.Season{}, model.ErrSeasonNotFound
	}
	return season, nil
}

func (s *MemorySeasonStore) GetActiveSeason(_ context.Context) (model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, season := range s.seasons {
		if season.Status == model.SeasonActive {
			return season, nil
		}
	}
	return model.Season{}, model.ErrSeasonNotFound
}

func (s *MemorySeasonStore) ListSeasons(_ context.Context) ([]model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Season, 0, len(s.seasons))
	for _, season := range s.seasons {
		out = append(out, season)
	}
	return out, nil
}

func (s *MemorySeasonStore) CreateSeason(_ context.Context, season model.Season) (model.SeasonID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.seasons[season.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	s.seasons[season.ID] = season
	return season.ID, nil
}

func (s *MemorySeasonStore) UpdateSeason(_ context.Context, season model.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.seasons[season.ID]; !exists {
		return model.ErrSeasonNotFound
	}
	s.seasons[season.ID] = season
	return nil
}

// MemoryTemplateStore is the in-memory reference implementation of
// TemplateStore.
type MemoryTemplateStore struct {
	mu        sync.Mutex
	templates map[model.TemplateID]model.ShiftTemplate
}

func NewMemoryTemplateStore(initial ...model.ShiftTemplate) *MemoryTemplateStore {
	s := &MemoryTemplateStore{templates: make(map[model.TemplateID]model.ShiftTemplate)}
	for _, t := range initial {
		s.templates[t.ID] = t
	}
	return s
}

func (s *MemoryTemplateStore) GetTemplate(_ context.Context, id model.TemplateID) (model.ShiftTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	if !ok {
		return model.ShiftTemplate{}, model.ErrTemplateNotFound
	}
	return t, nil
}

func (s *MemoryTemplateStore) ListTemplates(_ context.Context) ([]model.ShiftTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ShiftTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	return out, nil
}

func (s *MemoryTemplateStore) CreateTemplate(_ context.Context, t model.ShiftTemplate) (model.TemplateID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[t.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	s.templates[t.ID] = t
	return t.ID, nil
}

func (s *MemoryTemplateStore) UpdateTemplate(_ context.Context, t model.ShiftTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[t.ID]; !exists {
		return model.ErrTemplateNotFound
	}
	s.templates[t.ID] = t
	return nil
}
