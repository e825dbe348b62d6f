// Package all wires every built-in storage backend into the storage factory.
// It exists purely for side effects: a blank import runs each backend's init
// function, which registers its factory under its kind ("sqlite", "postgres").
// Binaries that want a subset of backends can import them individually.
package all

import (
	_ "reconcile/internal/storage/postgres"
	_ "reconcile/internal/storage/sqlite"
)
