package subscribers

import (
	"errors"
	"time"

	"dailymenu/internal/menu"
)

var (
	ErrNotFound       = errors.New("subscriber not found")
	ErrEmailTaken     = errors.New("email already subscribed")
	ErrInvalidEmail   = errors.New("a valid email address is required")
	ErrNoMeals        = errors.New("select at least one meal")
	ErrNoStations     = errors.New("select at least one station")
	ErrUnknownMeal    = errors.New("unknown meal")
	ErrUnknownStation = errors.New("unknown station")
	ErrDelivery       = errors.New("email delivery failed")
)

// Subscriber is a stored subscription. Token is the only identifier ever placed in links.
type Subscriber struct {
	ID          int64            `json:"-"`
	Email       string           `json:"-"`
	Token       string           `json:"-"`
	IsActive    bool             `json:"isActive"`
	Preferences menu.Preferences `json:"preferences"`
	ConfirmedAt *time.Time       `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Outcome describes what a subscribe request did.
type Outcome string

const (
	OutcomeCreated            Outcome = "created"
	OutcomeConfirmationResent Outcome = "confirmation_resent"
	OutcomeManageLinkSent     Outcome = "manage_link_sent"
)

// SubscribeRequest is the body of a subscription request
type SubscribeRequest struct {
	Email    string   `json:"email" binding:"required"`
	Meals    []string `json:"meals"`
	Stations []string `json:"stations"`
}

// PreferencesRequest is the body of a preference update
type PreferencesRequest struct {
	Meals    []string `json:"meals"`
	Stations []string `json:"stations"`
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
