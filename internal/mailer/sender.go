package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// ErrMissingCredentials is returned when no SMTP login is configured.
var ErrMissingCredentials = errors.New("SMTP credentials are missing")

// Sender delivers one pre-rendered HTML message. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Server   string
	Port     int
	Email    string
	Password string
	Timeout  time.Duration
}

// SMTPSender sends mail through an authenticated STARTTLS SMTP server.
type SMTPSender struct {
	cfg SMTPConfig
	log zerolog.Logger
}

// NewSMTPSender creates a sender; Server and Port default to smtp.gmail.com:587.
func NewSMTPSender(cfg SMTPConfig, log zerolog.Logger) *SMTPSender {
	if cfg.Server == "" {
		cfg.Server = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg, log: log.With().Str("component", "smtp").Logger()}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.cfg.Email == "" || s.cfg.Password == "" {
		return ErrMissingCredentials
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.Email); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(s.cfg.Server,
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Email),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}

	s.log.Info().Str("to", to).Msg("email sent")
	return nil
}

// LogSender only logs what would have been sent. Used for dry runs.
type LogSender struct {
	Log zerolog.Logger
}

func (s LogSender) Send(_ context.Context, to, subject, htmlBody string) error {
	s.Log.Info().Str("to", to).Str("subject", subject).Int("bytes", len(htmlBody)).Msg("dry run: email not sent")
	return nil
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
