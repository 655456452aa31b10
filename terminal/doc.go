// Package terminal binds the render loop to a tcell screen.
//
// It owns the screen lifecycle and runs a single input pump goroutine that
// turns tcell events into Events on a buffered channel. The render loop drains
// that channel with a non-blocking Poll, one event per iteration, so no core
// state is ever touched off the loop goroutine.
package terminal
