package cubeturn

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeturn/internal/config"
	"github.com/SeamusWaldron/cubeturn/internal/gesture"
	"github.com/SeamusWaldron/cubeturn/internal/pick"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	dragThreshold float64
	duration      float64
	instant       bool
	easing        rotation.Easing
	camera        Camera
	picker        pick.Provider
	log           logrus.FieldLogger
	turnLog       *turnlog.Logger
}

func defaultOptions() *options {
	return &options{
		dragThreshold: gesture.DefaultThreshold,
		duration:      rotation.DefaultDuration,
		easing:        rotation.EaseOutQuad,
		camera:        DefaultCamera(),
	}
}

// WithDragThreshold sets the drag length, in NDC units, a pointer must
// travel before a gesture resolves.
func WithDragThreshold(t float64) Option {
	return func(o *options) {
		if t >= 0 {
			o.dragThreshold = t
		}
	}
}

// WithAnimationDuration sets the length of an animated turn in seconds.
func WithAnimationDuration(seconds float64) Option {
	return func(o *options) {
		o.duration = seconds
	}
}

// WithInstantTurns commits every turn as soon as it starts.
// Headless drivers and tests use this to skip animation.
func WithInstantTurns(enabled bool) Option {
	return func(o *options) {
		o.instant = enabled
	}
}

// WithEasing sets the turn easing curve.
func WithEasing(e rotation.Easing) Option {
	return func(o *options) {
		if e != nil {
			o.easing = e
		}
	}
}

// WithCamera sets the camera pointer positions are projected through.
func WithCamera(c Camera) Option {
	return func(o *options) {
		o.camera = c
	}
}

// WithPicker replaces the built-in ray caster, for example with a scene
// graph's own intersection test.
func WithPicker(p pick.Provider) Option {
	return func(o *options) {
		o.picker = p
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithTurnLog records every gesture and turn to l.
func WithTurnLog(l *turnlog.Logger) Option {
	return func(o *options) {
		o.turnLog = l
	}
}

// WithConfig applies a loaded configuration file.
func WithConfig(c config.Config) Option {
	return func(o *options) {
		o.dragThreshold = c.DragThreshold
		o.duration = c.AnimationDuration
		o.instant = c.Instant
		o.easing = c.EasingFunc()
		o.camera = &PerspectiveCamera{
			Position: mgl64.Vec3(c.Camera.Position),
			Target:   mgl64.Vec3(c.Camera.Target),
			Up:       mgl64.Vec3{0, 1, 0},
			FovDeg:   c.Camera.FovDeg,
			Aspect:   1,
		}
	}
}
