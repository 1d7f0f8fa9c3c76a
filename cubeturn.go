// Package cubeturn is the interaction core of a 3x3x3 twisty puzzle: it
// turns pointer gestures into animated slice rotations while keeping all
// 27 cubies on integer grid cells.
//
// # Quick Start
//
// Drive the engine from any event loop. Pointer positions are normalized
// device coordinates in [-1, 1]:
//
//	e := cubeturn.New()
//	e.OnUpdate(func(u cubeturn.Update) {
//	    // u.Cubies, u.Pivot and u.PivotRotation describe what to draw
//	})
//	e.OnInputLock(func(locked bool) {
//	    orbit.SetEnabled(!locked)
//	})
//
//	e.OnPointerDown(mgl64.Vec2{0.1, 0.2})
//	e.OnPointerMove(mgl64.Vec2{0.3, 0.2})
//	e.OnPointerUp()
//
//	// once per frame
//	e.Tick(dt)
//
// # Headless Use
//
// Turns can be applied without any input:
//
//	e := cubeturn.New(cubeturn.WithInstantTurns(true))
//	e.Apply(cubeturn.SexyMove...)
//	e.ApplyNotation("F B2 L' M")
//
// # Turn Rules
//
//   - A drag resolves once it travels more than the drag threshold
//     (0.03 NDC units by default).
//   - The dominant drag direction within the clicked face picks the
//     rotation axis; the layer is the grabbed cubie's coordinate on it.
//   - One turn per gesture, and only one turn animates at a time. Input
//     arriving while a turn is locked is ignored, never queued.
//   - A turn commits atomically: every moved cubie lands on an integer
//     cell or the whole turn is rejected.
package cubeturn
