package mailer

import "context"

// Notifier sends the subscription emails (confirmation and manage link).
type Notifier struct {
	renderer *Renderer
	sender   Sender
}

func NewNotifier(renderer *Renderer, sender Sender) *Notifier {
	return &Notifier{renderer: renderer, sender: sender}
}

func (n *Notifier) SendConfirmation(ctx context.Context, email, token string) error {
	subject, body, err := n.renderer.Confirmation(token)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, email, subject, body)
}

func (n *Notifier) SendManageLink(ctx context.Context, email, token string) error {
	subject, body, err := n.renderer.ManageLink(token)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, email, subject, body)
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
