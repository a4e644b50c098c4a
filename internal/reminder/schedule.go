package reminder

import (
	"fmt"
	"strings"
	"time"
)

const (
	timeOfDayLayoutConstant               = "15:04:05"
	defaultDailyStartConstant             = "09:00:00"
	defaultMinimumIntervalMinutesConstant = 10
	defaultDueWindowHoursConstant         = 24
	defaultPollIntervalSecondsConstant    = 10
	invalidTimeOfDayTemplateConstant      = "invalid time of day %q: expected HH:MM:SS"
	invalidDailyStartTemplateConstant     = "invalid daily start: %w"
)

// TimeOfDay is a wall-clock moment without a date, such as the daily reminder
// start.
type TimeOfDay struct {
	hour   int
	minute int
	second int
}

// ParseTimeOfDay parses the "HH:MM:SS" layout.
func ParseTimeOfDay(rawValue string) (TimeOfDay, error) {
	parsedMoment, parseError := time.Parse(timeOfDayLayoutConstant, strings.TrimSpace(rawValue))
	if parseError != nil {
		return TimeOfDay{}, fmt.Errorf(invalidTimeOfDayTemplateConstant, rawValue)
	}
	return TimeOfDay{hour: parsedMoment.Hour(), minute: parsedMoment.Minute(), second: parsedMoment.Second()}, nil
}

// OnDate anchors the time of day to the calendar date of the provided moment.
func (timeOfDay TimeOfDay) OnDate(moment time.Time) time.Time {
	return time.Date(moment.Year(), moment.Month(), moment.Day(), timeOfDay.hour, timeOfDay.minute, timeOfDay.second, 0, moment.Location())
}

// String renders the "HH:MM:SS" layout.
func (timeOfDay TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", timeOfDay.hour, timeOfDay.minute, timeOfDay.second)
}

// ScheduleConfiguration captures reminder scheduling settings as loaded from
// configuration files.
type ScheduleConfiguration struct {
	DailyStart             string `mapstructure:"daily_start"`
	MinimumIntervalMinutes int    `mapstructure:"minimum_interval_minutes"`
	DueWindowHours         int    `mapstructure:"due_window_hours"`
	PollIntervalSeconds    int    `mapstructure:"poll_interval_seconds"`
}

// DefaultScheduleConfiguration returns baseline reminder scheduling values.
func DefaultScheduleConfiguration() ScheduleConfiguration {
	return ScheduleConfiguration{
		DailyStart:             defaultDailyStartConstant,
		MinimumIntervalMinutes: defaultMinimumIntervalMinutesConstant,
		DueWindowHours:         defaultDueWindowHoursConstant,
		PollIntervalSeconds:    defaultPollIntervalSecondsConstant,
	}
}

// ScheduleSettings are the resolved scheduling values used by the Scheduler.
type ScheduleSettings struct {
	DailyStart      TimeOfDay
	MinimumInterval time.Duration
	DueWindow       time.Duration
	PollInterval    time.Duration
}

// Resolve validates the configuration and applies defaults to unset values.
func (configuration ScheduleConfiguration) Resolve() (ScheduleSettings, error) {
	dailyStartValue := strings.TrimSpace(configuration.DailyStart)
	if len(dailyStartValue) == 0 {
		dailyStartValue = defaultDailyStartConstant
	}
	dailyStart, parseError := ParseTimeOfDay(dailyStartValue)
	if parseError != nil {
		return ScheduleSettings{}, fmt.Errorf(invalidDailyStartTemplateConstant, parseError)
	}

	minimumIntervalMinutes := configuration.MinimumIntervalMinutes
	if minimumIntervalMinutes <= 0 {
		minimumIntervalMinutes = defaultMinimumIntervalMinutesConstant
	}
	dueWindowHours := configuration.DueWindowHours
	if dueWindowHours <= 0 {
		dueWindowHours = defaultDueWindowHoursConstant
	}
	pollIntervalSeconds := configuration.PollIntervalSeconds
	if pollIntervalSeconds <= 0 {
		pollIntervalSeconds = defaultPollIntervalSecondsConstant
	}

	return ScheduleSettings{
		DailyStart:      dailyStart,
		MinimumInterval: time.Duration(minimumIntervalMinutes) * time.Minute,
		DueWindow:       time.Duration(dueWindowHours) * time.Hour,
		PollInterval:    time.Duration(pollIntervalSeconds) * time.Second,
	}, nil
}
