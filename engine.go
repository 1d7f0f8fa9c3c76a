package cubeturn

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeturn/internal/gesture"
	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/pick"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

// Re-exported types so callers need not import the internal packages.
type (
	Turn       = rotation.Turn
	Update     = rotation.Update
	UpdateKind = rotation.UpdateKind
	Transform  = rotation.Transform
	Ray        = pick.Ray
	PickResult = pick.Result
	Move       = notation.Move
)

// Update kinds.
const (
	UpdateStart    = rotation.UpdateStart
	UpdateProgress = rotation.UpdateProgress
	UpdateComplete = rotation.UpdateComplete
	UpdateAbort    = rotation.UpdateAbort
)

// grab is the pointer gesture in progress.
type grab struct {
	pick     pick.Result
	local    mgl64.Vec3 // grabbed face normal in the cubie's own frame
	start    mgl64.Vec2
	resolved bool
}

// Engine owns one puzzle and turns pointer gestures into slice rotations.
//
// Every entry point is meant to be called from a single event loop:
// pointer handlers on input, Tick once per frame. The Engine is not safe
// for concurrent use.
//
//	e := cubeturn.New()
//	e.OnUpdate(func(u cubeturn.Update) { render(u) })
//	e.OnPointerDown(ndc)
//	e.OnPointerMove(ndc)
//	e.OnPointerUp()
//	for e.Busy() {
//	    e.Tick(1.0 / 60)
//	}
type Engine struct {
	grid    *grid.Grid
	ctrl    *rotation.Controller
	opts    *options
	log     logrus.FieldLogger
	picker  pick.Provider
	turnLog *turnlog.Logger

	grab        *grab
	inputLocked bool

	// Callbacks
	onUpdate    func(Update)
	onInputLock func(bool)
}

// New creates an engine over a solved puzzle.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		quiet := logrus.New()
		quiet.Out = io.Discard
		o.log = quiet
	}

	e := &Engine{
		grid:    grid.New(),
		opts:    o,
		log:     o.log,
		turnLog: o.turnLog,
	}
	e.picker = o.picker
	if e.picker == nil {
		e.picker = pick.NewGridProvider(e.grid)
	}
	e.ctrl = rotation.New(e.grid,
		rotation.WithDuration(o.duration),
		rotation.WithInstant(o.instant),
		rotation.WithEasing(o.easing),
		rotation.WithLogger(o.log),
		rotation.WithUpdateHandler(e.handleUpdate),
		rotation.WithLockHandler(func(bool) { e.updateInputLock() }),
	)
	return e
}

// OnUpdate sets the callback for the transform stream.
func (e *Engine) OnUpdate(cb func(Update)) {
	e.onUpdate = cb
}

// OnInputLock sets the callback fired when camera controls should be
// disabled (true) or re-enabled (false).
func (e *Engine) OnInputLock(cb func(bool)) {
	e.onInputLock = cb
}

// SetCamera switches the camera used for subsequent pointer events.
func (e *Engine) SetCamera(c Camera) {
	e.opts.camera = c
}

// Camera returns the active camera.
func (e *Engine) Camera() Camera {
	return e.opts.camera
}

// Grid returns the puzzle. Callers must not commit to it directly.
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Busy returns true while a turn is locked.
func (e *Engine) Busy() bool {
	return e.ctrl.Locked()
}

// InputLocked returns true while a cubie is grabbed or a turn is locked.
func (e *Engine) InputLocked() bool {
	return e.inputLocked
}

// Grabbed returns the cubie under the pointer for the current gesture.
func (e *Engine) Grabbed() (PickResult, bool) {
	if e.grab == nil {
		return PickResult{}, false
	}
	return e.grabbed()
}

// grabbed re-reads the grabbed cubie, which a programmatic turn may have
// moved since the press.
func (e *Engine) grabbed() (PickResult, bool) {
	cb, ok := e.grid.Cubie(e.grab.pick.Cubie)
	if !ok {
		return PickResult{}, false
	}
	n, ok := pick.FaceNormal(e.grab.local, cb.Orientation)
	if !ok {
		return PickResult{}, false
	}
	return PickResult{Cubie: cb.ID, Position: cb.Position, Normal: n}, true
}

// Pick finds the cubie and face under ray.
func (e *Engine) Pick(ray Ray) (PickResult, bool) {
	return pick.Pick(e.picker, e.grid, ray)
}

// OnPointerDown starts a gesture at ndc. It reports whether a cubie was
// grabbed; presses are ignored while a turn is locked.
func (e *Engine) OnPointerDown(ndc mgl64.Vec2) bool {
	if e.ctrl.Locked() || e.grab != nil {
		return false
	}
	if e.opts.camera == nil {
		e.log.WithError(ErrNoCamera).Warn("pointer down ignored")
		return false
	}
	res, ok := e.Pick(e.opts.camera.Ray(ndc))
	if !ok {
		return false
	}

	local := res.Normal
	if cb, ok := e.grid.Cubie(res.Cubie); ok {
		local = cb.Orientation.Transpose().Apply(res.Normal)
	}
	e.grab = &grab{pick: res, local: local, start: ndc}
	e.log.WithFields(logrus.Fields{
		"cubie":  res.Cubie,
		"cell":   res.Position.String(),
		"normal": res.Normal,
	}).Debug("cubie grabbed")
	e.turnLog.PointerDown(res.Cubie, res.Position, res.Normal)
	e.updateInputLock()
	return true
}

// OnPointerMove feeds the current pointer position. Once the drag passes
// the threshold the gesture resolves into a turn; a gesture starts at most
// one turn. It reports whether a turn was started.
func (e *Engine) OnPointerMove(ndc mgl64.Vec2) (bool, error) {
	if e.grab == nil || e.grab.resolved || e.ctrl.Locked() {
		return false, nil
	}
	if e.opts.camera == nil {
		e.log.WithError(ErrNoCamera).Warn("pointer move ignored")
		return false, nil
	}
	d := ndc.Sub(e.grab.start)
	drag := e.opts.camera.Rotation().Rotate(mgl64.Vec3{d[0], d[1], 0})
	if drag.Len() <= e.opts.dragThreshold {
		return false, nil
	}

	cur, ok := e.grabbed()
	if !ok {
		return false, nil
	}
	res, ok := gesture.Resolve(cur.Normal, drag, e.opts.dragThreshold)
	if !ok {
		// mostly along the face normal; keep waiting
		return false, nil
	}
	e.grab.resolved = true
	e.turnLog.Gesture(res)

	turn := Turn{
		Axis:  res.Axis,
		Layer: cur.Position.Component(res.Axis),
		Sign:  res.Sign,
	}
	e.log.WithFields(logrus.Fields{
		"face":    res.Face.String(),
		"dragged": res.Dragged.String(),
		"turn":    turn.String(),
	}).Debug("gesture resolved")
	return e.ctrl.Start(turn)
}

// OnPointerUp ends the gesture. A gesture that never resolved is dropped
// without touching the puzzle.
func (e *Engine) OnPointerUp() {
	if e.grab != nil && !e.grab.resolved {
		e.log.WithField("cubie", e.grab.pick.Cubie).Debug("gesture cancelled below threshold")
	}
	e.grab = nil
	e.updateInputLock()
}

// Tick advances the active turn by dt seconds.
func (e *Engine) Tick(dt float64) error {
	return e.ctrl.Tick(dt)
}

// Finish completes the active turn immediately.
func (e *Engine) Finish() error {
	return e.ctrl.Finish()
}

// Turn starts a programmatic turn. Like a gesture, it is ignored while
// another turn is locked.
func (e *Engine) Turn(t Turn) (bool, error) {
	return e.ctrl.Start(t)
}

// Apply runs moves to completion one quarter turn at a time, ticking any
// animation through instantly.
func (e *Engine) Apply(moves ...Move) error {
	for _, m := range moves {
		for _, t := range m.Turns() {
			if e.ctrl.Locked() {
				if err := e.ctrl.Finish(); err != nil {
					return err
				}
			}
			if _, err := e.ctrl.Start(t); err != nil {
				return err
			}
			if err := e.ctrl.Finish(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyNotation parses s and applies it.
func (e *Engine) ApplyNotation(s string) error {
	moves, err := notation.Parse(s)
	if err != nil {
		return err
	}
	return e.Apply(moves...)
}

// Snapshot returns the transform of every cubie as it should be drawn
// now, including the in-flight slice.
func (e *Engine) Snapshot() []Transform {
	cubies := e.grid.Cubies()
	out := make([]Transform, len(cubies))
	index := make(map[grid.CubieID]int, len(cubies))
	for i, c := range cubies {
		out[i] = Transform{Cubie: c.ID, Position: c.Position.Vec3(), Rotation: c.Orientation.Quat()}
		index[c.ID] = i
	}
	if g := e.ctrl.Group(); g != nil {
		for _, t := range g.World(e.ctrl.Angle()) {
			out[index[t.Cubie]] = t
		}
	}
	return out
}

func (e *Engine) handleUpdate(u Update) {
	switch u.Kind {
	case UpdateStart:
		e.turnLog.TurnStart(u.Turn)
	case UpdateComplete:
		e.turnLog.TurnCommit(u.Turn)
	case UpdateAbort:
		e.turnLog.TurnAbort(u.Turn, u.Err)
	}
	if e.onUpdate != nil {
		e.onUpdate(u)
	}
}

func (e *Engine) updateInputLock() {
	locked := e.grab != nil || e.ctrl.Locked()
	if locked == e.inputLocked {
		return
	}
	e.inputLocked = locked
	if e.onInputLock != nil {
		e.onInputLock(locked)
	}
}
