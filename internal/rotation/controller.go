package rotation

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
)

// DefaultDuration is the length of an animated turn in seconds.
const DefaultDuration = 0.25

// State is the controller state.
type State int

const (
	Idle State = iota
	Locked
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Locked:
		return "locked"
	default:
		return "unknown"
	}
}

// UpdateKind tags an Update.
type UpdateKind int

const (
	// UpdateStart carries each grouped cubie relative to the pivot.
	UpdateStart UpdateKind = iota
	// UpdateProgress carries the new pivot angle.
	UpdateProgress
	// UpdateComplete carries the committed grid transforms.
	UpdateComplete
	// UpdateAbort carries the unchanged grid transforms after a failed commit.
	UpdateAbort
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateStart:
		return "start"
	case UpdateProgress:
		return "progress"
	case UpdateComplete:
		return "complete"
	case UpdateAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Update is one message of the transform stream consumed by a renderer.
type Update struct {
	Kind          UpdateKind
	Turn          Turn
	Angle         float64
	Pivot         mgl64.Vec3
	PivotRotation mgl64.Quat
	Cubies        []Transform
	Err           error // set on UpdateAbort
}

// Grid is the part of the cubie grid the controller needs.
type Grid interface {
	Select(axis grid.Axis, layer int8) []grid.CubieID
	Cubie(id grid.CubieID) (grid.Cubie, bool)
	Commit(update map[grid.CubieID]grid.Placement) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithDuration sets the animated turn length in seconds. A value <= 0
// makes every turn instantaneous.
func WithDuration(seconds float64) Option {
	return func(c *Controller) {
		c.duration = seconds
	}
}

// WithInstant applies every turn in a single step on Start.
func WithInstant(enabled bool) Option {
	return func(c *Controller) {
		c.instant = enabled
	}
}

// WithEasing sets the angle easing curve.
func WithEasing(e Easing) Option {
	return func(c *Controller) {
		if e != nil {
			c.easing = e
		}
	}
}

// WithUpdateHandler sets the callback for the transform stream.
func WithUpdateHandler(fn func(Update)) Option {
	return func(c *Controller) {
		c.onUpdate = fn
	}
}

// WithLockHandler sets the callback fired when the turn lock engages or
// releases.
func WithLockHandler(fn func(locked bool)) Option {
	return func(c *Controller) {
		c.onLock = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller is the Idle/Locked turn state machine. Only one turn may be
// locked at a time. It is not safe for concurrent use.
type Controller struct {
	grid     Grid
	duration float64
	instant  bool
	easing   Easing
	onUpdate func(Update)
	onLock   func(bool)
	log      logrus.FieldLogger

	state   State
	group   *Group
	elapsed float64
	angle   float64
}

// New creates a controller over g.
func New(g Grid, opts ...Option) *Controller {
	quiet := logrus.New()
	quiet.Out = io.Discard
	c := &Controller{
		grid:     g,
		duration: DefaultDuration,
		easing:   EaseOutQuad,
		log:      quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUpdateHandler replaces the transform stream callback.
func (c *Controller) SetUpdateHandler(fn func(Update)) { c.onUpdate = fn }

// SetLockHandler replaces the lock callback.
func (c *Controller) SetLockHandler(fn func(bool)) { c.onLock = fn }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Locked reports whether a turn is in flight.
func (c *Controller) Locked() bool { return c.state == Locked }

// Angle returns the current pivot angle in radians.
func (c *Controller) Angle() float64 { return c.angle }

// Active returns the in-flight turn.
func (c *Controller) Active() (Turn, bool) {
	if c.group == nil {
		return Turn{}, false
	}
	return c.group.turn, true
}

// Group returns the in-flight rotation group, or nil.
func (c *Controller) Group() *Group { return c.group }

// Start begins a turn. It reports false without error when another turn is
// locked or the slice is empty. In the instant variant the turn completes
// before Start returns, and a commit failure is returned here.
func (c *Controller) Start(turn Turn) (bool, error) {
	if err := turn.Validate(); err != nil {
		return false, err
	}
	if c.state == Locked {
		c.log.WithFields(logrus.Fields{"turn": turn.String(), "active": c.group.turn.String()}).
			Debug("turn ignored while another is locked")
		return false, nil
	}

	ids := c.grid.Select(turn.Axis, turn.Layer)
	if len(ids) == 0 {
		c.log.WithField("turn", turn.String()).Debug("empty slice, nothing to rotate")
		return false, nil
	}
	cubies := make([]grid.Cubie, 0, len(ids))
	for _, id := range ids {
		cb, ok := c.grid.Cubie(id)
		if !ok {
			return false, fmt.Errorf("rotation: slice names unknown cubie %d", id)
		}
		cubies = append(cubies, cb)
	}

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	c.group = newGroup(turn, cubies)
	c.state = Locked
	c.elapsed = 0
	c.angle = 0

	c.log.WithFields(logrus.Fields{"turn": turn.String(), "id": turn.ID, "cubies": len(ids)}).Debug("turn started")
	c.emitLock(true)
	c.emit(Update{Kind: UpdateStart, Cubies: c.group.Local()})

	if c.instant || c.duration <= 0 {
		return true, c.complete()
	}
	return true, nil
}

// Tick advances the in-flight turn by dt seconds. Irregular intervals are
// fine; the angle never passes the target. Negative or NaN intervals are
// ignored. When the turn reaches its target it is committed and the lock
// released; a commit failure aborts the turn and is returned.
func (c *Controller) Tick(dt float64) error {
	if c.state != Locked {
		return nil
	}
	switch {
	case math.IsInf(dt, 1):
		c.elapsed = c.duration
	case dt > 0:
		c.elapsed += dt
	}

	progress := 1.0
	if c.duration > 0 {
		progress = math.Min(c.elapsed/c.duration, 1)
	}
	target := c.group.turn.Target()
	if progress >= 1 {
		c.angle = target
	} else {
		c.angle = target * clamp01(c.easing(progress))
	}
	c.emit(Update{Kind: UpdateProgress})

	if progress >= 1 {
		return c.complete()
	}
	return nil
}

// Finish runs the in-flight turn to completion at once.
func (c *Controller) Finish() error {
	return c.Tick(math.Inf(1))
}

func (c *Controller) complete() error {
	g := c.group
	turn := g.turn
	c.angle = turn.Target()

	if err := c.grid.Commit(g.Flatten(c.angle)); err != nil {
		c.log.WithFields(logrus.Fields{"turn": turn.String(), "id": turn.ID}).
			WithError(err).Error("turn aborted")
		c.angle = 0
		c.emit(Update{Kind: UpdateAbort, Err: err, Cubies: c.resting(g.Members())})
		c.release()
		return fmt.Errorf("rotation: turn %s aborted: %w", turn, err)
	}

	c.log.WithFields(logrus.Fields{"turn": turn.String(), "id": turn.ID}).Debug("turn committed")
	c.emit(Update{Kind: UpdateComplete, Cubies: c.resting(g.Members())})
	c.release()
	return nil
}

// resting returns the grid transforms of ids at rest.
func (c *Controller) resting(ids []grid.CubieID) []Transform {
	out := make([]Transform, 0, len(ids))
	for _, id := range ids {
		cb, ok := c.grid.Cubie(id)
		if !ok {
			continue
		}
		out = append(out, Transform{Cubie: id, Position: cb.Position.Vec3(), Rotation: cb.Orientation.Quat()})
	}
	return out
}

func (c *Controller) release() {
	c.state = Idle
	c.group = nil
	c.elapsed = 0
	c.angle = 0
	c.emitLock(false)
}

func (c *Controller) emit(u Update) {
	if c.onUpdate == nil || c.group == nil {
		return
	}
	u.Turn = c.group.turn
	u.Angle = c.angle
	u.Pivot = c.group.pivot
	u.PivotRotation = c.group.Rotation(c.angle)
	c.onUpdate(u)
}

func (c *Controller) emitLock(locked bool) {
	if c.onLock != nil {
		c.onLock(locked)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
