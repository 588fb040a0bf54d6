package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/navigation"
	"github.com/mcoot/sessionflow/internal/session"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// IsJSON reports whether output is machine readable
func (o *Output) IsJSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.IsJSON() {
		errData := map[string]any{
			"error": errorBody(err),
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.IsJSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

// Progress writes a transient status line in text mode only
func (o *Output) Progress(msg string) {
	if !o.IsJSON() {
		_, _ = fmt.Fprintln(o.errOut, msg)
	}
}

func errorBody(err error) map[string]string {
	body := map[string]string{"message": err.Error()}
	var serr *session.SubmissionError
	if errors.As(err, &serr) {
		body["message"] = serr.Reason
		body["kind"] = string(serr.Kind)
		body["op"] = serr.Op
	}
	return body
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSessionResult(v)
	case StatusResult:
		o.printStatusResult(v)
	case NavigateResult:
		o.printNavigateResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionResult is the outcome of a session command
type SessionResult struct {
	Authenticated bool             `json:"authenticated"`
	User          *model.User      `json:"user"`
	Redirect      navigation.Route `json:"redirect,omitempty"`
}

// StatusResult is the header view plus the session state
type StatusResult struct {
	Phase         session.Phase     `json:"phase"`
	Authenticated bool              `json:"authenticated"`
	User          *model.User       `json:"user"`
	Header        []navigation.Link `json:"header"`
}

// NavigateResult is where a requested route actually lands
type NavigateResult struct {
	Requested navigation.Route `json:"requested"`
	Route     navigation.Route `json:"route"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

func newSessionResult(record model.SessionRecord, redirect navigation.Route) SessionResult {
	result := SessionResult{Redirect: redirect}
	if user, ok := record.User(); ok {
		result.Authenticated = true
		result.User = &user
	}
	return result
}

func (o *Output) printUser(u *model.User) {
	if u == nil {
		_, _ = fmt.Fprintln(o.out, "Not signed in")
		return
	}
	name := u.FullName
	if name == "" {
		name = u.Email
	}
	_, _ = fmt.Fprintf(o.out, "Signed in as %s <%s> (%s)\n", name, u.Email, u.UserID)
}

func (o *Output) printSessionResult(r SessionResult) {
	o.printUser(r.User)
	if r.Redirect != "" {
		_, _ = fmt.Fprintf(o.out, "-> %s\n", r.Redirect)
	}
}

func (o *Output) printStatusResult(r StatusResult) {
	_, _ = fmt.Fprintln(o.out, renderHeader(r.Header))
	o.printUser(r.User)
}

// renderHeader draws header links as [Label] buttons
func renderHeader(links []navigation.Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, "["+l.Label+"]")
	}
	return strings.Join(parts, " ")
}

func (o *Output) printNavigateResult(r NavigateResult) {
	if r.Route != r.Requested {
		_, _ = fmt.Fprintf(o.out, "%s -> %s\n", r.Requested, r.Route)
		return
	}
	_, _ = fmt.Fprintln(o.out, r.Route)
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.out, "Status: %s (%s)\n", h.Status, h.Server)
}
