// Package store provides reactive collections built on the keyed tracking
// API of package reactivity. Reads made inside an effect or computed are
// tracked per key; writes notify only the readers they affect.
//
// Like the System they belong to, collections are not safe for concurrent
// use.
package store
