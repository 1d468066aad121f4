package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("model: invalid activity category")

type Category string

const (
	CategoryFitness  Category = "fitness"
	CategoryStudy    Category = "study"
	CategoryHobby    Category = "hobby"
	CategoryReligion Category = "religion"
	CategoryJob      Category = "job"
	CategoryOther    Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryFitness, CategoryStudy, CategoryHobby, CategoryReligion, CategoryJob, CategoryOther:
		return true
	default:
		return false
	}
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryFitness,
		CategoryStudy,
		CategoryHobby,
		CategoryReligion,
		CategoryJob,
		CategoryOther,
	}
}

// Activity is a single trackable habit. CompletionCount is the running
// counter shown next to the +/- controls; History holds per-day completions
// keyed by civil day and drives the charts.
type Activity struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CompletionCount int      `json:"completionCount"`
	History         History  `json:"history"`
	Category        Category `json:"category"`
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: activity id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("model: activity title is required")
	}
	if a.CompletionCount < 0 {
		return errors.New("model: activity completion count must not be negative")
	}
	if !a.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, a.Category)
	}
	for day, count := range a.History {
		if _, err := ParseDay(day); err != nil {
			return fmt.Errorf("model: invalid history day %q", day)
		}
		if count < 0 {
			return fmt.Errorf("model: negative history count for day %s", day)
		}
	}
	return nil
}

// Clone returns a deep copy; History is a map and must not be shared
// between the store's canonical state and UI snapshots.
func (a Activity) Clone() Activity {
	out := a
	out.History = a.History.Clone()
	return out
}
