package subscriptions

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.Subscribe)
		subscriptions.GET("/:token", h.Get)
		subscriptions.PUT("/:token", h.UpdatePreferences)
		subscriptions.DELETE("/:token", h.Unsubscribe)

		// Link targets from emails: GET only shows a form, POST acts
		subscriptions.GET("/:token/confirm", h.ConfirmPage)
		subscriptions.POST("/:token/confirm", h.Confirm)
		subscriptions.GET("/:token/unsubscribe", h.UnsubscribePage)
		subscriptions.POST("/:token/unsubscribe", h.Unsubscribe)
	}
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
