// Package reactivity is a fine-grained dependency tracking and scheduling
// engine.
//
// Observable state is represented by a Dep. Computations that read state are
// Subscribers: a ReactiveEffect re-runs eagerly when something it read
// changes, a ComputedRef re-evaluates lazily and memoizes its value. Every
// read made while a subscriber is running creates (or refreshes) a Link
// between the Dep and the Subscriber. A Link is a node in two doubly linked
// lists at once: the Dep's subscriber list and the Subscriber's dependency
// list.
//
// Writes bump the Dep version and the System's global version, then notify
// every subscriber. Effects are queued and drained once per outermost batch;
// computeds only mark themselves dirty and forward the notification.
//
// Subscriber states (Flags):
//
//	ACTIVE|TRACKING           idle, between runs
//	RUNNING                   user function executing; re-entry ignored
//	                          unless ALLOW_RECURSE
//	NOTIFIED                  queued in the current batch
//	DIRTY                     computed whose dependency changed
//	no ACTIVE                 stopped effect, all links torn down
//
// A System is not safe for concurrent use. Hosts that touch a System from
// several goroutines must serialize every call themselves.
package reactivity
