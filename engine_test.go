package cubeturn

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/config"
	"github.com/SeamusWaldron/cubeturn/internal/facelets"
	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

// expected returns a grid after applying seq.
func expected(t *testing.T, seq string) *grid.Grid {
	t.Helper()
	e := New(WithInstantTurns(true))
	if err := e.ApplyNotation(seq); err != nil {
		t.Fatal(err)
	}
	return e.Grid()
}

// drag performs press, move by delta, release on e.
func drag(t *testing.T, e *Engine, at, delta mgl64.Vec2) bool {
	t.Helper()
	if !e.OnPointerDown(at) {
		t.Fatalf("nothing grabbed at %v", at)
	}
	started, err := e.OnPointerMove(at.Add(delta))
	if err != nil {
		t.Fatal(err)
	}
	e.OnPointerUp()
	return started
}

func TestFaceGestures(t *testing.T) {
	tests := []struct {
		name     string
		face     facelets.Face
		row, col int
		delta    mgl64.Vec2
		want     string
	}{
		{"front top row right", facelets.F, 0, 2, mgl64.Vec2{0.1, 0}, "U'"},
		{"front right column up", facelets.F, 1, 2, mgl64.Vec2{0, 0.1}, "R"},
		{"front left column down", facelets.F, 1, 0, mgl64.Vec2{0, -0.1}, "L"},
		{"front bottom row left", facelets.F, 2, 1, mgl64.Vec2{-0.1, 0}, "D'"},
		{"front middle column up", facelets.F, 0, 1, mgl64.Vec2{0, 0.2}, "M'"},
		{"right face back column up", facelets.R, 1, 2, mgl64.Vec2{0, 0.1}, "B"},
		{"up face right column away", facelets.U, 1, 2, mgl64.Vec2{0, 0.1}, "R"},
		{"up face front row right", facelets.U, 2, 1, mgl64.Vec2{0.1, 0}, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := FaceCamera(tt.face)
			e := New(WithInstantTurns(true), WithCamera(cam))
			if !drag(t, e, cam.CellNDC(tt.row, tt.col), tt.delta) {
				t.Fatal("gesture did not start a turn")
			}
			if !e.Grid().Equal(expected(t, tt.want)) {
				t.Errorf("gesture did not match %s", tt.want)
				t.Log(facelets.FromGrid(e.Grid()).String())
			}
		})
	}
}

func TestPerspectiveGestures(t *testing.T) {
	// The center of the default view lands on the front face of the
	// top-right-front corner.
	e := New(WithInstantTurns(true))
	res, ok := e.Pick(e.Camera().Ray(mgl64.Vec2{0, 0}))
	if !ok {
		t.Fatal("center ray should hit the puzzle")
	}
	if res.Position != (grid.Position{1, 1, 1}) || !res.Normal.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("picked %v normal %v", res.Position, res.Normal)
	}

	if !drag(t, e, mgl64.Vec2{0, 0}, mgl64.Vec2{0.1, 0}) {
		t.Fatal("drag right did not turn")
	}
	if !e.Grid().Equal(expected(t, "U'")) {
		t.Error("dragging right on the front face should turn the top layer like U'")
	}

	e = New(WithInstantTurns(true))
	drag(t, e, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0.1})
	if !e.Grid().Equal(expected(t, "R")) {
		t.Error("dragging up on the front face should turn the right layer like R")
	}
}

func TestCameraRotationIsView(t *testing.T) {
	c := DefaultCamera()
	q := c.Rotation()
	forward := q.Rotate(mgl64.Vec3{0, 0, -1})
	want := c.Target.Sub(c.Position).Normalize()
	if !forward.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("forward = %v, want %v", forward, want)
	}
	if up := q.Rotate(mgl64.Vec3{0, 1, 0}); up[1] <= 0 {
		t.Errorf("screen up %v should lean toward +Y", up)
	}
	if r := c.Ray(mgl64.Vec2{0.5, -0.5}); math.Abs(r.Direction.Len()-1) > 1e-9 {
		t.Error("ray direction should be normalized")
	}
}

func TestBelowThresholdCancels(t *testing.T) {
	cam := FaceCamera(facelets.F)
	e := New(WithInstantTurns(true), WithCamera(cam))
	var locks []bool
	e.OnInputLock(func(l bool) { locks = append(locks, l) })

	if drag(t, e, cam.CellNDC(1, 1), mgl64.Vec2{0.02, 0.01}) {
		t.Error("sub-threshold drag should not turn")
	}
	if !e.Grid().IsSolved() {
		t.Error("cancelled gesture changed the puzzle")
	}
	if len(locks) != 2 || !locks[0] || locks[1] {
		t.Errorf("lock events = %v, want [true false]", locks)
	}
	if e.InputLocked() {
		t.Error("input should be unlocked after release")
	}
}

func TestGrabFollowsProgrammaticTurn(t *testing.T) {
	cam := FaceCamera(facelets.F)
	e := New(WithInstantTurns(true), WithCamera(cam))
	at := cam.CellNDC(1, 2)
	if !e.OnPointerDown(at) {
		t.Fatal("nothing grabbed")
	}

	// R carries the grabbed front sticker onto the top face.
	if err := e.ApplyNotation("R"); err != nil {
		t.Fatal(err)
	}
	got, ok := e.Grabbed()
	if !ok {
		t.Fatal("grab lost")
	}
	if got.Position != (grid.Position{1, 1, 0}) || !got.Normal.ApproxEqual(mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("grabbed = %v normal %v, want (1,1,0) facing up", got.Position, got.Normal)
	}

	started, err := e.OnPointerMove(at.Add(mgl64.Vec2{0.1, 0}))
	if err != nil {
		t.Fatal(err)
	}
	e.OnPointerUp()
	if !started {
		t.Fatal("drag did not start a turn")
	}
	if !e.Grid().Equal(expected(t, "R S")) {
		t.Error("drag should turn the slice the cubie is in now")
		t.Log(facelets.FromGrid(e.Grid()).String())
	}
}

func TestPointerMoveWithoutCamera(t *testing.T) {
	cam := FaceCamera(facelets.F)
	e := New(WithInstantTurns(true), WithCamera(cam))
	if !e.OnPointerDown(cam.CellNDC(1, 2)) {
		t.Fatal("nothing grabbed")
	}
	e.SetCamera(nil)
	started, err := e.OnPointerMove(mgl64.Vec2{0.9, 0.9})
	if started || err != nil {
		t.Errorf("OnPointerMove = %v, %v; want false, nil", started, err)
	}
	e.OnPointerUp()
	if !e.Grid().IsSolved() {
		t.Error("puzzle changed without a camera")
	}
}

func TestPressOnEmptySpace(t *testing.T) {
	e := New(WithCamera(FaceCamera(facelets.F)))
	if e.OnPointerDown(mgl64.Vec2{0.99, 0.99}) {
		t.Error("press outside the puzzle should grab nothing")
	}
	if started, _ := e.OnPointerMove(mgl64.Vec2{0, 0}); started {
		t.Error("move without a grab should not turn")
	}
	if e.InputLocked() {
		t.Error("input lock engaged without a grab")
	}
}

func TestOneTurnPerGesture(t *testing.T) {
	cam := FaceCamera(facelets.F)
	e := New(WithInstantTurns(true), WithCamera(cam))
	at := cam.CellNDC(1, 2)
	e.OnPointerDown(at)
	if started, _ := e.OnPointerMove(at.Add(mgl64.Vec2{0, 0.1})); !started {
		t.Fatal("first move should turn")
	}
	if started, _ := e.OnPointerMove(at.Add(mgl64.Vec2{0.5, 0.5})); started {
		t.Error("a gesture must not start a second turn")
	}
	e.OnPointerUp()
	if !e.Grid().Equal(expected(t, "R")) {
		t.Error("expected exactly one R")
	}
}

func TestAnimatedTurnLocksInput(t *testing.T) {
	cam := FaceCamera(facelets.F)
	e := New(WithCamera(cam), WithAnimationDuration(0.25))
	var locks []bool
	var kinds []UpdateKind
	e.OnInputLock(func(l bool) { locks = append(locks, l) })
	e.OnUpdate(func(u Update) { kinds = append(kinds, u.Kind) })

	at := cam.CellNDC(1, 2)
	e.OnPointerDown(at)
	if started, err := e.OnPointerMove(at.Add(mgl64.Vec2{0, 0.1})); !started || err != nil {
		t.Fatalf("turn not started: %v", err)
	}
	e.OnPointerUp()
	if !e.Busy() || !e.InputLocked() {
		t.Fatal("input should stay locked while the turn animates")
	}

	// Everything is ignored while locked.
	if e.OnPointerDown(cam.CellNDC(0, 0)) {
		t.Error("press accepted while a turn is locked")
	}
	if ok, _ := e.Turn(Turn{Axis: grid.Y, Layer: 1, Sign: 1}); ok {
		t.Error("programmatic turn accepted while a turn is locked")
	}

	if err := e.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if !e.Busy() {
		t.Fatal("turn finished too early")
	}
	if err := e.Tick(0.2); err != nil {
		t.Fatal(err)
	}
	if e.Busy() || e.InputLocked() {
		t.Error("turn should be committed and input unlocked")
	}
	if len(locks) != 2 || !locks[0] || locks[1] {
		t.Errorf("lock events = %v, want [true false]", locks)
	}
	if kinds[0] != UpdateStart || kinds[len(kinds)-1] != UpdateComplete {
		t.Errorf("update kinds = %v", kinds)
	}
	if !e.Grid().Equal(expected(t, "R")) {
		t.Error("animated gesture should commit R")
	}
}

func TestSnapshotMidTurn(t *testing.T) {
	e := New()
	if ok, err := e.Turn(Turn{Axis: grid.Y, Layer: 1, Sign: 1}); !ok || err != nil {
		t.Fatalf("turn not started: %v", err)
	}
	e.Tick(0.125)

	snap := e.Snapshot()
	if len(snap) != grid.Count {
		t.Fatalf("snapshot has %d cubies", len(snap))
	}
	moving := 0
	for _, tr := range snap {
		off := math.Abs(tr.Position[0]-math.Round(tr.Position[0])) +
			math.Abs(tr.Position[2]-math.Round(tr.Position[2]))
		if off > 0.1 {
			moving++
			if math.Abs(tr.Position[1]-1) > 1e-9 {
				t.Errorf("cubie %d left the top layer: %v", tr.Cubie, tr.Position)
			}
		}
	}
	// the top center sits on the axis; the 8 others are mid-arc
	if moving != 8 {
		t.Errorf("%d cubies mid-arc, want 8", moving)
	}

	e.Finish()
	for _, tr := range e.Snapshot() {
		for i := 0; i < 3; i++ {
			if tr.Position[i] != math.Round(tr.Position[i]) {
				t.Fatalf("cubie %d not on a cell after commit: %v", tr.Cubie, tr.Position)
			}
		}
	}
}

func TestTurnLogRecordsGesture(t *testing.T) {
	var buf bytes.Buffer
	tl, err := turnlog.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	cam := FaceCamera(facelets.F)
	e := New(WithInstantTurns(true), WithCamera(cam), WithTurnLog(tl))
	drag(t, e, cam.CellNDC(1, 2), mgl64.Vec2{0, 0.1})

	log, err := turnlog.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []turnlog.EventType{
		turnlog.EventPointerDown,
		turnlog.EventGesture,
		turnlog.EventTurnStart,
		turnlog.EventTurnCommit,
	}
	if len(log.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(log.Events), len(want))
	}
	for i, ev := range log.Events {
		if ev.EventType != want[i] {
			t.Errorf("event %d = %s, want %s", i, ev.EventType, want[i])
		}
	}
	turns := log.CommittedTurns()
	if len(turns) != 1 {
		t.Fatalf("committed = %v", turns)
	}
	if m, ok := notation.FromTurn(turns[0]); !ok || m.Notation() != "R" {
		t.Errorf("committed %v, want R", turns[0])
	}
}

func TestPredefinedMoves(t *testing.T) {
	e := New(WithInstantTurns(true))
	for i := 0; i < 6; i++ {
		if err := e.Apply(SexyMove...); err != nil {
			t.Fatal(err)
		}
	}
	if !e.Grid().IsSolved() {
		t.Error("sexy move x6 should return to solved")
	}

	e = New(WithInstantTurns(true))
	e.Apply(TPerm...)
	if facelets.FromGrid(e.Grid()).IsSolved() {
		t.Error("T-perm should scramble the net")
	}
	e.Apply(TPerm...)
	if !facelets.FromGrid(e.Grid()).IsSolved() {
		t.Error("T-perm x2 should return the net to solved")
	}
}

func TestApplyAnimatedEngine(t *testing.T) {
	e := New()
	if err := e.ApplyNotation("R U2 R'"); err != nil {
		t.Fatal(err)
	}
	if e.Busy() {
		t.Error("Apply should leave no turn in flight")
	}
	if !e.Grid().Equal(expected(t, "R U2 R'")) {
		t.Error("animated Apply disagrees with instant Apply")
	}
	if err := e.ApplyNotation("R Q"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("error = %v, want ErrInvalidNotation", err)
	}
}

func TestWithConfig(t *testing.T) {
	c := config.Default()
	c.Instant = true
	e := New(WithConfig(c))
	if ok, err := e.Turn(Turn{Axis: grid.X, Layer: 1, Sign: -1}); !ok || err != nil {
		t.Fatalf("turn not applied: %v", err)
	}
	if e.Busy() {
		t.Error("instant config should commit immediately")
	}
	if _, ok := e.Camera().(*PerspectiveCamera); !ok {
		t.Error("config should install a perspective camera")
	}
}

func TestNDC(t *testing.T) {
	if got := NDC(0, 0, 200, 100); got != (mgl64.Vec2{-1, 1}) {
		t.Errorf("top-left = %v", got)
	}
	if got := NDC(100, 50, 200, 100); got != (mgl64.Vec2{0, 0}) {
		t.Errorf("center = %v", got)
	}
}
