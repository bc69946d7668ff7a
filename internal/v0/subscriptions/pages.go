package subscriptions

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/action.html
var pageFS embed.FS

var actionPage = template.Must(template.ParseFS(pageFS, "templates/action.html"))

// page is the browser view of a link target.
type page struct {
	Title   string
	Message string
	// Button, when set, renders a form that POSTs back to the same URL.
	Button string
}

var (
	confirmPrompt     = page{Title: "Confirm your subscription", Message: "Press the button to start receiving the daily menu.", Button: "Confirm"}
	confirmDone       = page{Title: "Subscription confirmed", Message: "Subscription confirmed."}
	unsubscribePrompt = page{Title: "Unsubscribe", Message: "Press the button to stop receiving the daily menu.", Button: "Unsubscribe"}
	unsubscribeDone   = page{Title: "Unsubscribed", Message: "You have been unsubscribed."}
	linkNotFound      = page{Title: "Link not recognized", Message: "This link is not valid anymore."}
)

func renderPage(c *gin.Context, status int, p page) {
	var buf bytes.Buffer
	if err := actionPage.Execute(&buf, p); err != nil {
		c.String(http.StatusInternalServerError, "render page: %v", err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// wantsPage reports whether the request is a browser form submission.
func wantsPage(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEPOSTForm
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
