package thumbnail

// State is the cascade position for one video's resolution attempt.
type State int

const (
	// Probing means a candidate quality is waiting for a probe outcome.
	Probing State = iota
	// Resolved is terminal: a candidate loaded and its URL is final.
	Resolved
	// Exhausted is terminal: every quality failed; callers should render a
	// descriptive placeholder instead of a broken image.
	Exhausted
)

// Cascade tracks the probe position for a single video. Each entry gets its
// own Cascade, so concurrent resolutions share no state. A quality is never
// probed twice: Candidate returns the same URL until Report moves on.
type Cascade struct {
	id    string
	index int
	state State
	url   string
}

// NewCascade starts a cascade for the given video id at the highest quality.
func NewCascade(id string) *Cascade {
	return &Cascade{id: id}
}

// ID returns the video id the cascade is resolving.
func (c *Cascade) ID() string {
	return c.id
}

// State returns the current cascade state.
func (c *Cascade) State() State {
	return c.state
}

// Candidate returns the image URL to probe next. ok is false once the
// cascade has reached a terminal state.
func (c *Cascade) Candidate() (string, bool) {
	if c.state != Probing {
		return "", false
	}
	return URL(c.id, Qualities[c.index]), true
}

// Report feeds the outcome of the current candidate's probe back into the
// cascade. Success resolves the cascade at the current quality; failure
// advances to the next, or exhausts when none remain. Reports arriving after
// a terminal state (e.g. a stray callback) are ignored.
func (c *Cascade) Report(ok bool) {
	if c.state != Probing {
		return
	}

	if ok {
		c.url = URL(c.id, Qualities[c.index])
		c.state = Resolved
		return
	}

	c.index++
	if c.index >= len(Qualities) {
		c.state = Exhausted
	}
}

// ResolvedURL returns the image URL that loaded, or "" while the cascade is
// not in the Resolved state.
func (c *Cascade) ResolvedURL() string {
	if c.state != Resolved {
		return ""
	}
	return c.url
}
