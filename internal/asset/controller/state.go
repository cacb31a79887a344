package controller

// State is the controller's position in the sync state machine.
type State string

const (
	StateIdle            State = "IDLE"
	StateFetching        State = "FETCHING"
	StateProcessingBlock State = "PROCESSING_BLOCK"
	StateAdvancingCursor State = "ADVANCING_CURSOR"
	StateErrorBackoff    State = "ERROR_BACKOFF"
	StateResyncing       State = "RESYNCING"
)

// States lists every state, for metrics registration.
func States() []string {
	return []string{
		string(StateIdle),
		string(StateFetching),
		string(StateProcessingBlock),
		string(StateAdvancingCursor),
		string(StateErrorBackoff),
		string(StateResyncing),
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.metrics.ObserveState(string(s))
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
