// internal/controller/track_controller.go
package controller

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

// TrackController serves the public, unauthenticated tracking route.
type TrackController struct {
	ClickService *service.ClickService
}

var noticePage = template.Must(template.New("notice").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Educational Simulation</title>
    <style>
      body { font-family: Arial, sans-serif; padding: 24px; max-width: 820px; margin: 0 auto; }
      .card { border: 1px solid #e5e5e5; border-radius: 12px; padding: 18px; }
      .ok { color: #0a7; font-weight: bold; }
      code { background: #f6f6f6; padding: 2px 6px; border-radius: 6px; }
    </style>
  </head>
  <body>
    <h2 class="ok">✅ Phishing Simulation (Awareness)</h2>
    <div class="card">
      <p>You clicked a link from an <strong>educational simulation</strong> of the campaign: <strong>{{.CampaignName}}</strong>.</p>
      <p>No password, personal data or credentials were collected. The goal is awareness.</p>
      <ul>
        <li>Check the sender and the domain</li>
        <li>Hover over links before clicking</li>
        <li>Be suspicious of urgency ("now or never")</li>
        <li>Report to the security team when in doubt</li>
      </ul>
      <p><small>Recorded (UTC): <code>{{.RecordedAt}}</code></small></p>
    </div>
  </body>
</html>
`))

// Track records one click for the token and renders the notice page. Every
// visit counts; an unknown token is a 404 with nothing recorded.
func (c *TrackController) Track(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	result, err := c.ClickService.RecordClick(token, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, appErrors.ErrTargetNotFound) {
			// Exact body, no trailing newline.
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "Invalid token.")
			return
		}
		log.Println("⚠️ failed to record click:", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	noticePage.Execute(w, struct {
		CampaignName string
		RecordedAt   string
	}{
		CampaignName: result.CampaignName,
		RecordedAt:   result.RecordedAt.Format(time.RFC3339),
	})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
