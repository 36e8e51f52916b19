package editor

// Result is how a module requests editor-level actions (accepting the line,
// appending the match LCD, accepting a match, switching the bind group,
// passing a chord on, regenerating matches); the editor applies them after
// the module returns. Result carries no buffer edits: modules insert and
// delete text directly through Context.Buffer.
type Result struct {
	redraw           bool
	acceptLine       bool
	appendMatchLCD   bool
	acceptMatchIndex int
	acceptMatch      bool
	setGroupTo       int
	groupWasSet      bool
	passToOthers     bool
	regenerate       bool

	previousGroup int
}

func newResult(previousGroup int) *Result {
	r := &Result{acceptMatchIndex: -1}
	r.previousGroup = previousGroup
	return r
}

// SetRedraw records that this binding changed the line. The editor does not
// read this flag and does not render the line itself.
func (r *Result) SetRedraw() { r.redraw = true }

// Redraw reports whether SetRedraw was called.
func (r *Result) Redraw() bool { return r.redraw }

// AcceptLine requests the edit loop end with the buffer's current contents.
func (r *Result) AcceptLine() { r.acceptLine = true }

// WantsAcceptLine reports whether AcceptLine was called.
func (r *Result) WantsAcceptLine() bool { return r.acceptLine }

// AppendMatchLCD requests the editor append the current match
// collection's longest common denominator to the buffer at the end word.
func (r *Result) AppendMatchLCD() { r.appendMatchLCD = true }

// WantsAppendMatchLCD reports whether AppendMatchLCD was called.
func (r *Result) WantsAppendMatchLCD() bool { return r.appendMatchLCD }

// AcceptMatch requests the editor replace the end word with match i from
// the current collection.
func (r *Result) AcceptMatch(i int) {
	r.acceptMatch = true
	r.acceptMatchIndex = i
}

// WantsAcceptMatch reports whether AcceptMatch was called, and the index
// requested.
func (r *Result) WantsAcceptMatch() (int, bool) { return r.acceptMatchIndex, r.acceptMatch }

// SetBindGroup requests the resolver switch to bind group g, and returns
// the group that was active before the switch (so a module can restore it
// later).
func (r *Result) SetBindGroup(g int) (previous int) {
	previous = r.previousGroup
	r.setGroupTo = g
	r.groupWasSet = true
	return previous
}

// WantsGroupSwitch reports whether SetBindGroup was called, and the
// requested group.
func (r *Result) WantsGroupSwitch() (int, bool) { return r.setGroupTo, r.groupWasSet }

// PassToOtherModules requests the resolver continue emitting bindings for
// the same chord so later-registered modules still see it.
func (r *Result) PassToOtherModules() { r.passToOthers = true }

// WantsPassToOtherModules reports whether PassToOtherModules was called.
func (r *Result) WantsPassToOtherModules() bool { return r.passToOthers }

// TriggerMatchRegeneration requests the editor retokenize the buffer and
// re-run the generator pipeline before the next binding is dispatched.
func (r *Result) TriggerMatchRegeneration() { r.regenerate = true }

// WantsMatchRegeneration reports whether TriggerMatchRegeneration was
// called (directly, or implicitly via AppendMatchLCD, which must refresh
// the match set before its LCD is read).
func (r *Result) WantsMatchRegeneration() bool { return r.regenerate || r.appendMatchLCD }
