package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
)

// RecordStore encodes typed collections on top of a Provider.
type RecordStore struct {
	provider Provider
}

// NewRecordStore wraps a loaded provider.
func NewRecordStore(p Provider) *RecordStore {
	return &RecordStore{provider: p}
}

// Provider returns the underlying blob store.
func (r *RecordStore) Provider() Provider {
	return r.provider
}

// saveList encodes items as a JSON array under key. A nil slice is stored
// as an empty array.
func saveList[T any](p Provider, key, what string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", what, err)
	}
	if err := p.Put(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", what, err)
	}
	return nil
}

// loadList decodes the JSON array stored under key. An absent key yields
// an empty list and no error; an undecodable payload yields an empty list
// and an error wrapping ErrDecode.
func loadList[T any](p Provider, key, what string) ([]T, error) {
	data, err := p.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return []T{}, fmt.Errorf("failed to read %s: %w", what, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}, fmt.Errorf("%w under %q: %v", ErrDecode, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveHabits replaces the habit collection stored under key.
func (r *RecordStore) SaveHabits(key string, habits []models.Habit) error {
	return saveList(r.provider, key, "habits", habits)
}

// LoadHabits returns the habit collection stored under key. An absent key
// yields an empty list and no error; an undecodable payload yields an empty
// list and an error wrapping ErrDecode.
func (r *RecordStore) LoadHabits(key string) ([]models.Habit, error) {
	return loadList[models.Habit](r.provider, key, "habits")
}

func (r *RecordStore) SaveGoals(goals []models.Goal) error {
	return saveList(r.provider, constants.GoalsKey, "goals", goals)
}

func (r *RecordStore) LoadGoals() ([]models.Goal, error) {
	return loadList[models.Goal](r.provider, constants.GoalsKey, "goals")
}

func (r *RecordStore) SaveVisionBoards(boards []models.VisionBoard) error {
	return saveList(r.provider, constants.VisionBoardsKey, "vision boards", boards)
}

func (r *RecordStore) LoadVisionBoards() ([]models.VisionBoard, error) {
	return loadList[models.VisionBoard](r.provider, constants.VisionBoardsKey, "vision boards")
}

func (r *RecordStore) SaveTips(tips []models.Tip) error {
	return saveList(r.provider, constants.TipsKey, "tips", tips)
}

func (r *RecordStore) LoadTips() ([]models.Tip, error) {
	return loadList[models.Tip](r.provider, constants.TipsKey, "tips")
}

func (r *RecordStore) SaveStories(stories []models.Story) error {
	return saveList(r.provider, constants.StoriesKey, "stories", stories)
}

func (r *RecordStore) LoadStories() ([]models.Story, error) {
	return loadList[models.Story](r.provider, constants.StoriesKey, "stories")
}

// SavePreferences persists the user preferences.
func (r *RecordStore) SavePreferences(p models.Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}
	if err := r.provider.Put(constants.PreferencesKey, data); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// LoadPreferences returns the stored preferences, or the defaults when none
// are stored or the record is unreadable.
func (r *RecordStore) LoadPreferences() models.Preferences {
	data, err := r.provider.Get(constants.PreferencesKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read preferences, using defaults", "error", err)
		}
		return models.DefaultPreferences()
	}

	p := models.DefaultPreferences()
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn("Failed to decode preferences, using defaults", "error", err)
		return models.DefaultPreferences()
	}
	models.ApplyDefaultPreferences(&p)
	return p
}

// Clear removes one collection.
func (r *RecordStore) Clear(key string) error {
	if err := r.provider.Delete(key); err != nil {
		return fmt.Errorf("failed to clear %q: %w", key, err)
	}
	return nil
}

// ClearAll removes every collection the application owns.
func (r *RecordStore) ClearAll() error {
	for _, key := range constants.CollectionKeys() {
		if err := r.Clear(key); err != nil {
			return err
		}
	}
	return nil
}
