/*
Package session implements session management and persistence orchestration.

A Manager serializes turns of one session (a per-session mutex, plus an optional
distributed lock for replicas sharing a store) and runs each turn as
load, handle, then save or delete.
*/
package session
