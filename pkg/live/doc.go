// Package live hosts animated components behind a WebSocket.
//
// A Loop serializes all work for one host: timer callbacks scheduled with
// animate.NewLoopScheduler, client events, and renders all run on the same
// goroutine. A Host renders its root component with pkg/render, pushes the
// HTML to every connected client, and routes client events back to the
// handlers collected during the last render.
//
// Wire protocol (JSON text frames):
//
//	server -> client  {"type":"html","html":"<div ...>"}
//	server -> client  {"type":"error","code":"A041","message":"..."}
//	client -> server  {"type":"event","hid":"h1","event":"animationend"}
//
// Typical setup:
//
//	loop := live.NewLoop(live.LoopConfig{})
//	defer loop.Close()
//
//	card := animate.WithAnimation(Card,
//	    animate.WithScheduler(animate.NewLoopScheduler(loop)))
//	inst, _ := card(vdom.Props{"animationClassName": "flash"})
//
//	host := live.NewHost(loop, inst, live.HostConfig{})
//	host.Watch(inst)
//	http.ListenAndServe(":8080", host.Router())
package live
