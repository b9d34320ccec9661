// Package serenity is the real-time core of a lightweight 2D presentation
// engine: a frame scheduler, a time-based animation driver, affine
// transforms, vector and color math, and an event-driven input sampler.
//
// The core never talks to a window, GPU or sound card directly. It runs on
// a [Host], which supplies a monotonic clock and a frame-callback primitive.
// [ManualHost] drives frames by hand for tests and headless tools,
// [TickerHost] drives them from a timer, and the ebitenhost package runs
// them inside an [Ebitengine] game loop.
//
// # Quick start
//
//	cfg := serenity.DefaultConfig()
//	host := ebitenhost.New(cfg)
//	engine := serenity.NewEngine(host, cfg)
//	host.BindInput(engine.Input())
//
//	engine.RegisterUpdate(func(dt float64) {
//		if engine.InputState().IsKeyPressed("ArrowRight") {
//			player.Position = player.Position.Add(serenity.Vec2(200*dt, 0))
//		}
//	})
//	engine.RegisterRender(func() {
//		host.Surface().Clear()
//		host.Surface().FillCircle(player.Position, 16, serenity.RGB(255, 200, 0))
//	})
//
//	engine.Start()
//	if err := host.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Frame loop
//
// Every frame the [Loop] computes the seconds elapsed since the previous
// frame, runs all update callbacks in registration order with that delta,
// then runs all render callbacks in registration order. Registration returns
// a [CallbackHandle] that removes the callback again.
//
// # Animation
//
// [Animate] samples the host clock each frame and feeds an eased progress
// value to a draw callback until the duration has elapsed. The returned
// [TweenRun] may be ignored (fire and forget) or used to cancel the run and
// wait for completion. Easing functions from [gween] plug in through [Ease].
// [TweenGroup] tweens struct fields by frame delta instead.
//
// # Transforms
//
// [Matrix] is a 3×3 affine transform on column vectors: Multiply(a, b)
// applies b first. [Transform] builds one from position, scale, rotation and
// pivot.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package serenity
