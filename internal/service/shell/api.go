package shell

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/oshokin/analog-timer/internal/domain/timer"
	"github.com/oshokin/analog-timer/internal/logger"
	"github.com/oshokin/analog-timer/internal/service/engine"
)

// webUsername is the actor username recorded for commands from the shell.
const webUsername = "web"

// maxBodyBytes bounds command request bodies.
const maxBodyBytes = 4 << 10

// Engine is the part of the timer engine the API drives.
type Engine interface {
	Dispatch(ctx context.Context, cmd timer.Command) (timer.Snapshot, error)
	Snapshot(ctx context.Context) (timer.Snapshot, error)
}

// API exposes the engine to the web shell over JSON.
type API struct {
	engine Engine
}

// commandRequest is the body of POST /api/commands.
type commandRequest struct {
	Action  string        `json:"action"`
	Seconds int           `json:"seconds"`
	Limit   *timer.Fields `json:"limit"`
}

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

// NewAPI creates the shell API over engine.
func NewAPI(engine Engine) *API {
	return &API{engine: engine}
}

// Register adds the API routes to mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/snapshot", a.snapshot)
	mux.HandleFunc("POST /api/commands", a.command)
}

func (a *API) snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.engine.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (a *API) command(w http.ResponseWriter, r *http.Request) {
	var request commandRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})

		return
	}

	action, err := timer.ParseAction(request.Action)
	if err != nil {
		writeError(w, err)

		return
	}

	cmd := timer.Command{
		Action: action,
		Delta:  request.Seconds,
		Actor:  remoteActor(r),
	}

	if action == timer.ActionSetLimit {
		if request.Limit == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit is required for set"})

			return
		}

		cmd.Limit = *request.Limit
	}

	snapshot, err := a.engine.Dispatch(r.Context(), cmd)
	if err != nil {
		writeError(w, err)

		return
	}

	logger.DebugKV(r.Context(), "Shell command applied", "action", action.String(), "state", snapshot.State.String())

	writeJSON(w, http.StatusOK, snapshot)
}

// remoteActor identifies the browser by its address.
func remoteActor(r *http.Request) *timer.Actor {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return &timer.Actor{
		Hostname: host,
		Username: webUsername,
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, timer.ErrUnknownAction), errors.Is(err, engine.ErrTickNotAllowed):
		code = http.StatusBadRequest
	case errors.Is(err, engine.ErrStopped):
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(body)
}
