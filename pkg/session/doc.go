/*
Package session implements session management and persistence orchestration.

A Manager serializes every read-modify-write cycle of a session ID, so that each
session behaves as a single-threaded navigation state machine even when it is
served by several HTTP handlers or several replicas sharing a Redis store.
*/
package session
