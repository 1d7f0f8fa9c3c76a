// Package turnlog writes a JSONL record of every gesture and turn in a
// session. The log is a diagnostics artifact; Replay checks it against a
// fresh puzzle but nothing restores play from it.
package turnlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubeturn/internal/gesture"
	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
)

// Version is written into every log header.
const Version = "1.0"

// ErrBadHeader is returned when the first line of a log is not a header.
var ErrBadHeader = errors.New("turnlog: missing or malformed header")

// EventType identifies the type of logged event
type EventType string

const (
	EventPointerDown EventType = "pointer_down"
	EventGesture     EventType = "gesture_resolved"
	EventTurnStart   EventType = "turn_start"
	EventTurnCommit  EventType = "turn_commit"
	EventTurnAbort   EventType = "turn_abort"
)

// Event represents a single logged event
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	ElapsedMs int64          `json:"elapsed_ms"`
	EventType EventType      `json:"event_type"`
	Cubie     *grid.CubieID  `json:"cubie,omitempty"`
	Position  *grid.Position `json:"position,omitempty"`
	Normal    []float64      `json:"normal,omitempty"`
	Face      *grid.Axis     `json:"face,omitempty"`
	Dragged   *grid.Axis     `json:"dragged,omitempty"`
	Axis      *grid.Axis     `json:"axis,omitempty"`
	Sign      int8           `json:"sign,omitempty"`
	Turn      *rotation.Turn `json:"turn,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type header struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Log represents a complete session log
type Log struct {
	Version   string    `json:"version"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Events    []Event   `json:"events"`
}

// CommittedTurns returns the turns that reached turn_commit, in order.
func (l *Log) CommittedTurns() []rotation.Turn {
	var out []rotation.Turn
	for _, e := range l.Events {
		if e.EventType == EventTurnCommit && e.Turn != nil {
			out = append(out, *e.Turn)
		}
	}
	return out
}

// Count returns how many events of type t the log holds.
func (l *Log) Count(t EventType) int {
	n := 0
	for _, e := range l.Events {
		if e.EventType == t {
			n++
		}
	}
	return n
}

// Logger appends events as they happen. A nil *Logger discards
// everything, so callers never need to check whether logging is on.
type Logger struct {
	w         io.Writer
	file      *os.File
	sessionID string
	startTime time.Time
	now       func() time.Time
	err       error
}

// Start creates a timestamped log file in logDir and writes the header.
func Start(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("turns_%s.jsonl", time.Now().Format("20060102_150405"))
	file, err := os.Create(filepath.Join(logDir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l, err := NewLogger(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	l.file = file
	return l, nil
}

// NewLogger writes a header to w and returns a logger appending to it.
func NewLogger(w io.Writer) (*Logger, error) {
	l := &Logger{
		w:         w,
		sessionID: uuid.New().String(),
		now:       time.Now,
	}
	l.startTime = l.now()
	if err := l.writeJSON(header{
		Type:      "header",
		Version:   Version,
		SessionID: l.sessionID,
		CreatedAt: l.startTime,
	}); err != nil {
		return nil, err
	}
	return l, nil
}

// SessionID returns the session identifier written in the header.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// PointerDown records a grabbed cubie and the clicked face normal.
func (l *Logger) PointerDown(id grid.CubieID, pos grid.Position, normal mgl64.Vec3) {
	if l == nil {
		return
	}
	l.log(Event{
		EventType: EventPointerDown,
		Cubie:     &id,
		Position:  &pos,
		Normal:    []float64{normal[0], normal[1], normal[2]},
	})
}

// Gesture records a resolved drag.
func (l *Logger) Gesture(res gesture.Resolution) {
	if l == nil {
		return
	}
	l.log(Event{
		EventType: EventGesture,
		Face:      &res.Face,
		Dragged:   &res.Dragged,
		Axis:      &res.Axis,
		Sign:      res.Sign,
	})
}

// TurnStart records a turn entering the controller.
func (l *Logger) TurnStart(t rotation.Turn) {
	if l == nil {
		return
	}
	l.log(Event{EventType: EventTurnStart, Turn: &t})
}

// TurnCommit records a turn written back to the grid.
func (l *Logger) TurnCommit(t rotation.Turn) {
	if l == nil {
		return
	}
	l.log(Event{EventType: EventTurnCommit, Turn: &t})
}

// TurnAbort records a turn whose commit was rejected.
func (l *Logger) TurnAbort(t rotation.Turn, cause error) {
	if l == nil {
		return
	}
	e := Event{EventType: EventTurnAbort, Turn: &t}
	if cause != nil {
		e.Error = cause.Error()
	}
	l.log(e)
}

func (l *Logger) log(e Event) {
	now := l.now()
	e.Timestamp = now
	e.ElapsedMs = now.Sub(l.startTime).Milliseconds()
	if err := l.writeJSON(e); err != nil && l.err == nil {
		l.err = err
	}
}

func (l *Logger) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.w.Write(append(data, '\n'))
	return err
}

// Err returns the first write error, if any.
func (l *Logger) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// Close closes the log file
func (l *Logger) Close() error {
	if l != nil && l.file != nil {
		return l.file.Close()
	}
	return nil
}

// FilePath returns the current log file path
func (l *Logger) FilePath() string {
	if l != nil && l.file != nil {
		return l.file.Name()
	}
	return ""
}

// Load reads a log from a JSONL file.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses a log from r.
func Read(r io.Reader) (*Log, error) {
	log := &Log{
		Events: make([]Event, 0),
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		// First line is the header
		if lineNum == 1 {
			var h header
			if err := json.Unmarshal(line, &h); err != nil || h.Type != "header" {
				return nil, ErrBadHeader
			}
			log.Version = h.Version
			log.SessionID = h.SessionID
			log.CreatedAt = h.CreatedAt
			continue
		}

		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	if lineNum == 0 {
		return nil, ErrBadHeader
	}

	return log, nil
}
