package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rules are the tunable business constants of the gym.
type Rules struct {
	ConsistencyThreshold   int      `yaml:"consistency_threshold" json:"consistency_threshold"`
	ConsistencyBonusPoints int      `yaml:"consistency_bonus_points" json:"consistency_bonus_points"`
	CheckInTypes           []string `yaml:"check_in_types" json:"check_in_types"`
	TimeSlots              []string `yaml:"time_slots" json:"time_slots"`
	MaxSearchResults       int      `yaml:"max_search_results" json:"max_search_results"`
}

var timeSlotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// DefaultRules returns the built-in rules: 5 distinct days a week earn 10
// points, and the slot grid runs hourly from 06:00 to 21:00.
func DefaultRules() Rules {
	slots := make([]string, 0, 16)
	for h := 6; h <= 21; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return Rules{
		ConsistencyThreshold:   5,
		ConsistencyBonusPoints: 10,
		CheckInTypes:           []string{"manual", "qr_code", "front_desk", "self_service"},
		TimeSlots:              slots,
		MaxSearchResults:       50,
	}
}

// LoadRules overlays the YAML file at path on top of DefaultRules. An empty
// path yields the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}

	var overlay Rules
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}

	if overlay.ConsistencyThreshold != 0 {
		rules.ConsistencyThreshold = overlay.ConsistencyThreshold
	}
	if overlay.ConsistencyBonusPoints != 0 {
		rules.ConsistencyBonusPoints = overlay.ConsistencyBonusPoints
	}
	if len(overlay.CheckInTypes) > 0 {
		rules.CheckInTypes = overlay.CheckInTypes
	}
	if len(overlay.TimeSlots) > 0 {
		rules.TimeSlots = overlay.TimeSlots
	}
	if overlay.MaxSearchResults != 0 {
		rules.MaxSearchResults = overlay.MaxSearchResults
	}

	return rules, rules.Validate()
}

// Validate rejects rule sets the services cannot work with.
func (r Rules) Validate() error {
	if r.ConsistencyThreshold < 1 || r.ConsistencyThreshold > 7 {
		return fmt.Errorf("consistency_threshold must be between 1 and 7, got %d", r.ConsistencyThreshold)
	}
	if r.ConsistencyBonusPoints < 1 {
		return fmt.Errorf("consistency_bonus_points must be positive")
	}
	if r.MaxSearchResults < 1 {
		return fmt.Errorf("max_search_results must be positive")
	}
	for _, s := range r.TimeSlots {
		if !timeSlotPattern.MatchString(s) {
			return fmt.Errorf("invalid time slot %q, expected HH:MM", s)
		}
	}
	return nil
}

// HasTimeSlot reports whether slot is part of the weekly grid.
func (r Rules) HasTimeSlot(slot string) bool {
	for _, s := range r.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// HasCheckInType reports whether t is an accepted check-in type.
func (r Rules) HasCheckInType(t string) bool {
	for _, s := range r.CheckInTypes {
		if s == t {
			return true
		}
	}
	return false
}
