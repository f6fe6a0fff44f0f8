// Package validation checks user input before it reaches the tracker.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	must("hhmm", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimeFormat(fl.Field().String())
	})
	must("habit_category", func(fl validator.FieldLevel) bool {
		_, err := models.ParseHabitCategory(fl.Field().String())
		return err == nil
	})
	must("habit_frequency", func(fl validator.FieldLevel) bool {
		_, err := models.ParseFrequency(fl.Field().String())
		return err == nil
	})
	must("iana_tz", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimezone(fl.Field().String())
	})
	must("goal_category", func(fl validator.FieldLevel) bool {
		_, err := models.ParseGoalCategory(fl.Field().String())
		return err == nil
	})
	must("goal_priority", func(fl validator.FieldLevel) bool {
		_, err := models.ParseGoalPriority(fl.Field().String())
		return err == nil
	})
	must("tip_category", func(fl validator.FieldLevel) bool {
		_, err := models.ParseTipCategory(fl.Field().String())
		return err == nil
	})
	must("tip_difficulty", func(fl validator.FieldLevel) bool {
		_, err := models.ParseTipDifficulty(fl.Field().String())
		return err == nil
	})
	must("story_category", func(fl validator.FieldLevel) bool {
		_, err := models.ParseStoryCategory(fl.Field().String())
		return err == nil
	})
	must("inspiration", func(fl validator.FieldLevel) bool {
		_, err := models.ParseInspirationLevel(fl.Field().String())
		return err == nil
	})
	must("no_promo", func(fl validator.FieldLevel) bool {
		return !promotional(fl.Field().String())
	})
	must("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// promoPhrases mark a story as advertising.
var promoPhrases = []string{"spam", "advertisement", "buy now", "click here"}

func promotional(s string) bool {
	s = strings.ToLower(s)
	for _, p := range promoPhrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// HabitInput is the raw form of a habit as entered on the command line or in the TUI.
type HabitInput struct {
	Name         string `validate:"required,max=100"`
	Description  string `validate:"max=500"`
	Category     string `validate:"required,habit_category"`
	Frequency    string `validate:"required,habit_frequency"`
	TargetValue  int    `validate:"gte=1,lte=100000"`
	Unit         string `validate:"max=32"`
	ReminderTime string `validate:"omitempty,hhmm"`
}

// CompletionInput is one completion as entered by the user.
type CompletionInput struct {
	Value int    `validate:"gte=0,lte=100000"`
	Note  string `validate:"max=500"`
}

type preferencesInput struct {
	DailyReminderTime   string   `validate:"required,hhmm"`
	Timezone            string   `validate:"required,iana_tz"`
	PreferredCategories []string `validate:"dive,habit_category"`
}

var messages = map[string]string{
	"required":        "is required",
	"hhmm":            "must be a time in HH:MM format",
	"habit_category":  "must be a known category",
	"habit_frequency": "must be daily, weekly or custom",
	"iana_tz":         "must be an IANA timezone such as Europe/Berlin or Local",
	"datetime":        "must be a date in YYYY-MM-DD format",
	"goal_category":   "must be a known goal category",
	"goal_priority":   "must be low, medium or high",
	"tip_category":    "must be a known tip category",
	"tip_difficulty":  "must be beginner, intermediate or advanced",
	"story_category":  "must be a known story category",
	"inspiration":     "must be gentle, motivating or transformational",
	"no_promo":        "appears to contain promotional material",
	"notblank":        "cannot be empty",
}

// humanize turns validator errors into one line per failing field.
func humanize(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	lines := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if msg, ok := messages[fe.Tag()]; ok {
			lines = append(lines, fmt.Sprintf("%s %s", field, msg))
			continue
		}
		switch fe.Tag() {
		case "max":
			lines = append(lines, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "min":
			lines = append(lines, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "gte":
			lines = append(lines, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "lte":
			lines = append(lines, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			lines = append(lines, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(lines, "; "))
}

func (in HabitInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return humanize(validate.Struct(in))
}

// Habit validates the input and converts it into a new, active habit.
func (in HabitInput) Habit() (models.Habit, error) {
	if err := in.Validate(); err != nil {
		return models.Habit{}, err
	}
	category, _ := models.ParseHabitCategory(in.Category)
	frequency, _ := models.ParseFrequency(in.Frequency)

	h := models.Habit{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Frequency:   frequency,
		TargetValue: in.TargetValue,
		Unit:        strings.TrimSpace(in.Unit),
		IsActive:    true,
	}
	if in.ReminderTime != "" {
		r := in.ReminderTime
		h.ReminderTime = &r
	}
	return h, nil
}

// DefaultHabitInput returns the values pre-filled in add forms.
func DefaultHabitInput() HabitInput {
	return HabitInput{
		Category:    string(models.CategoryHealth),
		Frequency:   string(models.FrequencyDaily),
		TargetValue: constants.DefaultTargetValue,
		Unit:        constants.DefaultUnit,
	}
}

func (in CompletionInput) Validate() error {
	return humanize(validate.Struct(in))
}

// Preferences checks the free-form preference fields.
func Preferences(p models.Preferences) error {
	return humanize(validate.Struct(preferencesInput{
		DailyReminderTime:   p.DailyReminderTime,
		Timezone:            p.Timezone,
		PreferredCategories: p.PreferredCategories,
	}))
}

// GoalInput is a goal as entered by the user. TargetDate is YYYY-MM-DD.
type GoalInput struct {
	Title       string `validate:"notblank,max=100"`
	Description string `validate:"max=500"`
	Category    string `validate:"required,goal_category"`
	Priority    string `validate:"required,goal_priority"`
	TargetDate  string `validate:"omitempty,datetime=2006-01-02"`
	Reflection  string `validate:"max=2000"`
}

// Goal validates the input and converts it; the target date is midnight
// in loc.
func (in GoalInput) Goal(loc *time.Location) (models.Goal, error) {
	if err := humanize(validate.Struct(in)); err != nil {
		return models.Goal{}, err
	}
	category, _ := models.ParseGoalCategory(in.Category)
	priority, _ := models.ParseGoalPriority(in.Priority)
	g := models.Goal{
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Category:        category,
		Priority:        priority,
		ReflectionNotes: strings.TrimSpace(in.Reflection),
	}
	if in.TargetDate != "" {
		d, err := utils.ParseDateInLocation(in.TargetDate, loc)
		if err != nil {
			return models.Goal{}, err
		}
		g.TargetDate = &d
	}
	return g, nil
}

// TipInput is a tip as entered by the user.
type TipInput struct {
	Title       string   `validate:"notblank,max=100"`
	Content     string   `validate:"notblank,max=5000"`
	Category    string   `validate:"required,tip_category"`
	Difficulty  string   `validate:"required,tip_difficulty"`
	ReadMinutes int      `validate:"gte=1,lte=120"`
	Tags        []string `validate:"dive,max=32"`
	Author      string   `validate:"max=100"`
	ActionItems []string `validate:"dive,notblank,max=200"`
}

func (in TipInput) Tip() (models.Tip, error) {
	if err := humanize(validate.Struct(in)); err != nil {
		return models.Tip{}, err
	}
	category, _ := models.ParseTipCategory(in.Category)
	difficulty, _ := models.ParseTipDifficulty(in.Difficulty)
	return models.Tip{
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Category:    category,
		Difficulty:  difficulty,
		ReadMinutes: in.ReadMinutes,
		Tags:        trimAll(in.Tags),
		Author:      strings.TrimSpace(in.Author),
		ActionItems: trimAll(in.ActionItems),
	}, nil
}

// StoryInput is a community story as submitted. Length limits count
// characters, not bytes.
type StoryInput struct {
	Title            string `validate:"notblank,max=100,no_promo"`
	Content          string `validate:"notblank,min=50,max=2000,no_promo"`
	Category         string `validate:"required,story_category"`
	InspirationLevel string `validate:"required,inspiration"`
	Anonymous        bool
	AuthorName       string   `validate:"max=100"`
	Milestone        string   `validate:"max=200"`
	Tags             []string `validate:"dive,max=32"`
}

func (in StoryInput) Validate() error {
	return humanize(validate.Struct(in))
}

// Story validates the input and converts it. Anonymous stories drop the
// author name.
func (in StoryInput) Story() (models.Story, error) {
	if err := in.Validate(); err != nil {
		return models.Story{}, err
	}
	category, _ := models.ParseStoryCategory(in.Category)
	level, _ := models.ParseInspirationLevel(in.InspirationLevel)
	s := models.Story{
		Title:            strings.TrimSpace(in.Title),
		Content:          strings.TrimSpace(in.Content),
		Category:         category,
		IsAnonymous:      in.Anonymous || strings.TrimSpace(in.AuthorName) == "",
		Milestone:        strings.TrimSpace(in.Milestone),
		Tags:             trimAll(in.Tags),
		InspirationLevel: level,
	}
	if !s.IsAnonymous {
		s.AuthorName = strings.TrimSpace(in.AuthorName)
	}
	return s, nil
}

// StoryFrom re-checks an existing story against the submission rules.
func StoryFrom(s models.Story) StoryInput {
	return StoryInput{
		Title:            s.Title,
		Content:          s.Content,
		Category:         string(s.Category),
		InspirationLevel: string(s.InspirationLevel),
		Anonymous:        s.IsAnonymous,
		AuthorName:       s.AuthorName,
		Milestone:        s.Milestone,
		Tags:             s.Tags,
	}
}

func trimAll(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
