package turnlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubeturn/internal/gesture"
	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
)

func TestWriteAndRead(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}

	first := rotation.Turn{ID: "a", Axis: grid.Y, Layer: 1, Sign: 1}
	second := rotation.Turn{ID: "b", Axis: grid.X, Layer: -1, Sign: -1}

	l.PointerDown(26, grid.Position{1, 1, 1}, mgl64.Vec3{0, 0, 1})
	l.Gesture(gesture.Resolution{Face: grid.Z, Dragged: grid.X, Axis: grid.Y, Sign: 1})
	l.TurnStart(first)
	l.TurnCommit(first)
	l.TurnStart(second)
	l.TurnAbort(second, errors.New("occupied"))
	if err := l.Err(); err != nil {
		t.Fatal(err)
	}

	log, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if log.Version != Version {
		t.Errorf("version = %q, want %q", log.Version, Version)
	}
	if log.SessionID == "" || log.SessionID != l.SessionID() {
		t.Errorf("session id = %q, want %q", log.SessionID, l.SessionID())
	}
	if len(log.Events) != 6 {
		t.Fatalf("got %d events, want 6", len(log.Events))
	}

	down := log.Events[0]
	if down.EventType != EventPointerDown || down.Cubie == nil || *down.Cubie != 26 {
		t.Errorf("unexpected pointer event: %+v", down)
	}
	if down.Position == nil || *down.Position != (grid.Position{1, 1, 1}) {
		t.Errorf("pointer position = %v", down.Position)
	}

	g := log.Events[1]
	if g.Axis == nil || *g.Axis != grid.Y || g.Sign != 1 {
		t.Errorf("unexpected gesture event: %+v", g)
	}

	turns := log.CommittedTurns()
	if len(turns) != 1 || turns[0] != first {
		t.Errorf("committed = %v, want [%v]", turns, first)
	}
	if log.Count(EventTurnAbort) != 1 || log.Events[5].Error != "occupied" {
		t.Error("abort event not recorded")
	}
}

func TestStartCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := Start(dir)
	if err != nil {
		t.Fatal(err)
	}
	l.TurnCommit(rotation.Turn{Axis: grid.Z, Layer: 0, Sign: -1})
	path := l.FilePath()
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(filepath.Base(path), "turns_") {
		t.Errorf("unexpected file name %q", path)
	}
	log, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := log.CommittedTurns(); len(got) != 1 || got[0].Axis != grid.Z {
		t.Errorf("committed = %v", got)
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.TurnStart(rotation.Turn{})
	l.TurnCommit(rotation.Turn{})
	if l.FilePath() != "" || l.Close() != nil || l.Err() != nil {
		t.Error("nil logger should be inert")
	}
}

func TestReadRejectsMissingHeader(t *testing.T) {
	for _, in := range []string{"", `{"event_type":"turn_commit"}` + "\n", "not json\n"} {
		if _, err := Read(strings.NewReader(in)); !errors.Is(err, ErrBadHeader) {
			t.Errorf("Read(%q) error = %v, want ErrBadHeader", in, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want not-exist", err)
	}
}
