package culture

// Ambient is an explicitly scoped holder for a "current" culture. It replaces
// hidden process-wide locale state: the code that owns a unit of work creates
// an Ambient, passes it to anything that wants the convenience constructors,
// and restores overrides with the function Use returns.
//
// An Ambient is a single synchronous snapshot; it must not be read
// concurrently with a conflicting Use from another unit of work.
type Ambient struct {
	cur Culture
}

// NewAmbient creates a holder with the given initial culture.
func NewAmbient(initial Culture) *Ambient {
	return &Ambient{cur: initial}
}

// Current returns the culture currently in effect.
func (a *Ambient) Current() Culture {
	return a.cur
}

// Use installs c and returns a function that restores the previous culture.
// Callers defer the restore so replacement is scoped even on early return.
func (a *Ambient) Use(c Culture) (restore func()) {
	prev := a.cur
	a.cur = c
	return func() { a.cur = prev }
}
