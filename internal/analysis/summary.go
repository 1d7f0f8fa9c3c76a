// Package analysis computes session statistics from a turn log.
package analysis

import (
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

// PauseThresholdMs is the gap between commits counted as a pause.
const PauseThresholdMs = 1500

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	SessionID         string  `json:"session_id"`
	DurationMs        int64   `json:"duration_ms"`
	Grabs             int     `json:"grabs"`
	Gestures          int     `json:"gestures"`
	CancelledGestures int     `json:"cancelled_gestures"`
	TotalTurns        int     `json:"total_turns"`
	AbortedTurns      int     `json:"aborted_turns"`
	OptimizedMoves    int     `json:"optimized_moves"`
	Efficiency        float64 `json:"efficiency"`
	TPSOverall        float64 `json:"tps_overall"`
	LongestPauseMs    int64   `json:"longest_pause_ms"`
	PauseCount        int     `json:"pause_count_over_1500ms"`

	Profile *MovementProfile `json:"profile,omitempty"`
}

// Summarize walks the events of log.
func Summarize(log *turnlog.Log) *SessionSummary {
	s := &SessionSummary{SessionID: log.SessionID}

	var moves []notation.Move
	var commitTimes []int64
	for _, ev := range log.Events {
		switch ev.EventType {
		case turnlog.EventPointerDown:
			s.Grabs++
		case turnlog.EventGesture:
			s.Gestures++
		case turnlog.EventTurnAbort:
			s.AbortedTurns++
		case turnlog.EventTurnCommit:
			s.TotalTurns++
			commitTimes = append(commitTimes, ev.ElapsedMs)
			if ev.Turn != nil {
				if m, ok := notation.FromTurn(*ev.Turn); ok {
					moves = append(moves, m)
				}
			}
		}
		if ev.ElapsedMs > s.DurationMs {
			s.DurationMs = ev.ElapsedMs
		}
	}
	// A grab that never resolved was released below the drag threshold.
	s.CancelledGestures = s.Grabs - s.Gestures
	if s.CancelledGestures < 0 {
		s.CancelledGestures = 0
	}

	optimized := OptimizeMoves(moves)
	s.OptimizedMoves = len(optimized)
	s.Efficiency = CalculateEfficiency(moves, optimized)
	s.TPSOverall = CalculateTPS(s.TotalTurns, s.DurationMs)
	s.LongestPauseMs = FindLongestPause(commitTimes)
	s.PauseCount = CountPausesOver(commitTimes, PauseThresholdMs)
	s.Profile = AnalyzeMovementProfile(moves)
	return s
}

// CalculateTPS calculates turns per second.
func CalculateTPS(turns int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(turns) / (float64(durationMs) / 1000.0)
}

// FindLongestPause finds the longest gap between consecutive times.
func FindLongestPause(times []int64) int64 {
	var longest int64
	for i := 1; i < len(times); i++ {
		if gap := times[i] - times[i-1]; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps over a threshold.
func CountPausesOver(times []int64, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(times); i++ {
		if times[i]-times[i-1] > thresholdMs {
			count++
		}
	}
	return count
}

// quarterTurns returns the move's clockwise quarter turn count mod 4.
func quarterTurns(t notation.Turn) int {
	switch t {
	case notation.CW:
		return 1
	case notation.Double:
		return 2
	case notation.CCW:
		return 3
	}
	return 0
}

func turnFromQuarters(q int) (notation.Turn, bool) {
	switch q % 4 {
	case 1:
		return notation.CW, true
	case 2:
		return notation.Double, true
	case 3:
		return notation.CCW, true
	}
	return 0, false
}

// OptimizeMoves returns the sequence with adjacent same-layer moves merged
// and full cancellations removed.
func OptimizeMoves(moves []notation.Move) []notation.Move {
	if len(moves) == 0 {
		return moves
	}

	result := make([]notation.Move, 0, len(moves))

	for _, move := range moves {
		if len(result) == 0 {
			result = append(result, move)
			continue
		}

		last := &result[len(result)-1]
		if last.Face == move.Face {
			turn, ok := turnFromQuarters(quarterTurns(last.Turn) + quarterTurns(move.Turn))
			if !ok {
				// Full cancellation
				result = result[:len(result)-1]
			} else {
				last.Turn = turn
			}
		} else {
			result = append(result, move)
		}
	}

	return result
}

// CalculateEfficiency calculates the efficiency ratio (optimized/original).
func CalculateEfficiency(original, optimized []notation.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}

// MovementProfile records which layers and directions are used most.
type MovementProfile struct {
	FaceCounts    map[notation.Face]int `json:"face_counts"`
	TurnCounts    map[notation.Turn]int `json:"turn_counts"`
	MostUsedFace  notation.Face         `json:"most_used_face"`
	FaceSequences map[string]int        `json:"face_sequences"` // e.g., "RU" -> count
}

// AnalyzeMovementProfile analyzes which faces and turns are most used.
func AnalyzeMovementProfile(moves []notation.Move) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[notation.Face]int),
		TurnCounts:    make(map[notation.Turn]int),
		FaceSequences: make(map[string]int),
	}

	for i, m := range moves {
		profile.FaceCounts[m.Face]++
		profile.TurnCounts[m.Turn]++

		// Track 2-move face sequences
		if i > 0 {
			seq := string(moves[i-1].Face) + string(m.Face)
			profile.FaceSequences[seq]++
		}
	}

	maxFaceCount := 0
	for face, count := range profile.FaceCounts {
		// ties go to the alphabetically first face so output is stable
		if count > maxFaceCount || (count == maxFaceCount && face < profile.MostUsedFace) {
			maxFaceCount = count
			profile.MostUsedFace = face
		}
	}

	return profile
}
