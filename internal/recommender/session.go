package recommender

// Session is the state carried between recommendation calls: the identifier
// of the most recently generated test scenario, if any.
type Session struct {
	lastAction string
	set        bool
}

// LastAction reports the current action and whether one has been recorded.
func (s Session) LastAction() (string, bool) {
	return s.lastAction, s.set
}

// WithLastAction returns a session that has action as its last action.
func (s Session) WithLastAction(action string) Session {
	return Session{lastAction: action, set: true}
}

// Apply folds an extraction into the session. Without an identifier the
// previous state is kept as is.
func (s Session) Apply(ex Extraction) Session {
	if !ex.Found {
		return s
	}
	return s.WithLastAction(ex.Identifier)
}
