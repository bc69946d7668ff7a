package digest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dailymenu/internal/common"
	"dailymenu/internal/digest"
	"dailymenu/internal/menu"
)

// Runner is the part of digest.Runner the handler needs
type Runner interface {
	Run(ctx context.Context, opts digest.Options) (digest.Report, error)
}

type Handler struct {
	runner Runner
	loc    *time.Location
}

func NewHandler(runner Runner, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{runner: runner, loc: loc}
}

// Run executes a digest synchronously and returns its report.
func (h *Handler) Run(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	opts := digest.Options{Email: strings.ToLower(strings.TrimSpace(req.Email)), DryRun: req.DryRun}
	if req.Date != "" {
		date, err := time.ParseInLocation(menu.DateLayout, req.Date, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"Invalid date format. Please use YYYY-MM-DD"}))
			return
		}
		opts.Date = date
	}

	report, err := h.runner.Run(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(report))
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
