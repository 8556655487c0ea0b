package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ResolveLocation loads the configured timezone, falling back to UTC
// when the name is unknown. The reminder service and the scheduler must
// share the result so both trigger paths agree on the target date.
func ResolveLocation(timezone string) *time.Location {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn().Str("timezone", timezone).Msg("unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

// StartScheduler runs the reminder job on the given cron schedule in
// the given timezone. The returned cron should be stopped on shutdown.
func StartScheduler(schedule string, loc *time.Location, reminder *ReminderService) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(schedule, func() {
		reminder.Run(time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminder: %w", err)
	}

	c.Start()
	log.Info().
		Str("schedule", schedule).
		Str("timezone", loc.String()).
		Msg("reminder scheduler started")

	return c, nil
}
