package digest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// ParseAt parses an "HH:MM" wall-clock time.
func ParseAt(at string) (hour, minute uint, err error) {
	parts := strings.Split(strings.TrimSpace(at), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", at)
	}
	h, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", at)
	}
	m, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", at)
	}
	return uint(h), uint(m), nil
}

// Start registers a daily run at the given "HH:MM" in loc and starts the scheduler.
// The caller owns the returned scheduler and must Shutdown it.
func Start(r *Runner, at string, loc *time.Location, log zerolog.Logger) (gocron.Scheduler, error) {
	hour, minute, err := ParseAt(at)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(func() {
			if _, err := r.Run(context.Background(), Options{}); err != nil {
				log.Error().Err(err).Msg("scheduled digest run failed")
			}
		}),
		gocron.WithName("daily-digest"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	log.Info().Str("at", at).Str("timezone", loc.String()).Msg("daily digest scheduled")
	return s, nil
}

//   This project is the monolithic backend API for the OpenSourceDUTH team. Access to open data compiled and provided by the OpenSourceDUTH University Team.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
