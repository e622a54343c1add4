package pb

import "time"

// SystemActor identifies the host and user issuing a request.
type SystemActor struct {
	Hostname string `json:"hostname"`
	Username string `json:"username"`
}

// GetHostname returns the hostname or "" for a nil actor.
func (x *SystemActor) GetHostname() string {
	if x == nil {
		return ""
	}

	return x.Hostname
}

// GetUsername returns the username or "" for a nil actor.
func (x *SystemActor) GetUsername() string {
	if x == nil {
		return ""
	}

	return x.Username
}

// Limit is a countdown limit split into clock fields.
type Limit struct {
	Hours   int32 `json:"hours"`
	Minutes int32 `json:"minutes"`
	Seconds int32 `json:"seconds"`
}

// GetSnapshotRequest asks for the current snapshot.
type GetSnapshotRequest struct {
	RequestingActor *SystemActor `json:"requesting_actor,omitempty"`
}

// GetRequestingActor returns the actor or nil.
func (x *GetSnapshotRequest) GetRequestingActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.RequestingActor
}

// WatchRequest subscribes to snapshot changes.
type WatchRequest struct {
	RequestingActor *SystemActor `json:"requesting_actor,omitempty"`
}

// GetRequestingActor returns the actor or nil.
func (x *WatchRequest) GetRequestingActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.RequestingActor
}

// DispatchRequest applies one timer action.
type DispatchRequest struct {
	// Action is the action name: start, pause, stop, reset, acknowledge, add or set.
	Action string `json:"action"`
	// Seconds is the delta for "add".
	Seconds int64 `json:"seconds,omitempty"`
	// Limit is the new limit for "set".
	Limit *Limit `json:"limit,omitempty"`
	// Actor is required.
	Actor *SystemActor `json:"actor,omitempty"`
}

// GetAction returns the action name or "".
func (x *DispatchRequest) GetAction() string {
	if x == nil {
		return ""
	}

	return x.Action
}

// GetSeconds returns the add delta or 0.
func (x *DispatchRequest) GetSeconds() int64 {
	if x == nil {
		return 0
	}

	return x.Seconds
}

// GetLimit returns the limit or nil.
func (x *DispatchRequest) GetLimit() *Limit {
	if x == nil {
		return nil
	}

	return x.Limit
}

// GetActor returns the actor or nil.
func (x *DispatchRequest) GetActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.Actor
}

// SnapshotResponse carries a timer snapshot.
type SnapshotResponse struct {
	State        string    `json:"state"`
	Display      string    `json:"display"`
	Limit        *Limit    `json:"limit,omitempty"`
	LimitSeconds int64     `json:"limit_seconds"`
	Remaining    int64     `json:"remaining"`
	Elapsed      int64     `json:"elapsed"`
	Shown        int64     `json:"shown"`
	Timestamp    time.Time `json:"timestamp"`
}

// GetState returns the state name or "".
func (x *SnapshotResponse) GetState() string {
	if x == nil {
		return ""
	}

	return x.State
}

// GetDisplay returns the display text or "".
func (x *SnapshotResponse) GetDisplay() string {
	if x == nil {
		return ""
	}

	return x.Display
}
