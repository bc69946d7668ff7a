package subscriptions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dailymenu/internal/common"
	"dailymenu/internal/subscribers"
)

// Handler exposes the subscription lifecycle. The token in the path is the
// only credential a subscriber ever holds.
type Handler struct {
	service *subscribers.Service
}

func NewHandler(service *subscribers.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribers.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if _, err := h.service.Subscribe(c.Request.Context(), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, common.CreateSuccessResponse(MessageResponse{Message: CheckInboxMessage}))
}

func (h *Handler) Get(c *gin.Context) {
	sub, err := h.service.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(sub))
}

func (h *Handler) UpdatePreferences(c *gin.Context) {
	var req subscribers.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	sub, err := h.service.UpdatePreferences(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(sub))
}

// ConfirmPage is the target of the emailed confirm link. It changes nothing so
// that mail clients prefetching links cannot confirm on the reader's behalf.
func (h *Handler) ConfirmPage(c *gin.Context) {
	h.linkPage(c, confirmPrompt)
}

// Confirm activates the subscription. Form posts get a page, API calls JSON.
func (h *Handler) Confirm(c *gin.Context) {
	if err := h.service.Confirm(c.Request.Context(), c.Param("token")); err != nil {
		h.linkError(c, err)
		return
	}
	if wantsPage(c) {
		renderPage(c, http.StatusOK, confirmDone)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(MessageResponse{Message: confirmDone.Message}))
}

// UnsubscribePage is the target of the emailed unsubscribe link; see ConfirmPage.
func (h *Handler) UnsubscribePage(c *gin.Context) {
	h.linkPage(c, unsubscribePrompt)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	if err := h.service.Unsubscribe(c.Request.Context(), c.Param("token")); err != nil {
		h.linkError(c, err)
		return
	}
	if wantsPage(c) {
		renderPage(c, http.StatusOK, unsubscribeDone)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(MessageResponse{Message: unsubscribeDone.Message}))
}

func (h *Handler) linkPage(c *gin.Context, prompt page) {
	if _, err := h.service.Get(c.Request.Context(), c.Param("token")); err != nil {
		if errors.Is(err, subscribers.ErrNotFound) {
			renderPage(c, http.StatusNotFound, linkNotFound)
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	renderPage(c, http.StatusOK, prompt)
}

func (h *Handler) linkError(c *gin.Context, err error) {
	if wantsPage(c) && errors.Is(err, subscribers.ErrNotFound) {
		renderPage(c, http.StatusNotFound, linkNotFound)
		return
	}
	writeError(c, err)
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), common.CreateErrorResponse([]string{err.Error()}))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, subscribers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, subscribers.ErrInvalidEmail),
		errors.Is(err, subscribers.ErrNoMeals),
		errors.Is(err, subscribers.ErrNoStations),
		errors.Is(err, subscribers.ErrUnknownMeal),
		errors.Is(err, subscribers.ErrUnknownStation):
		return http.StatusBadRequest
	case errors.Is(err, subscribers.ErrDelivery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
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
