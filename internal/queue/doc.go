// Package queue models download tasks and the in-memory queue that orders
// them.
//
// A Task moves pending -> downloading -> completed|failed and never leaves a
// terminal state. The Queue keeps a FIFO pending list and an append-only
// completed list; nothing is persisted, so a fresh run starts from scratch.
package queue
