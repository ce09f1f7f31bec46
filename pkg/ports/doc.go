/*
Package ports defines the interfaces between the civicnav core and its adapters.

These interfaces decouple the navigation state machine from external implementations,
allowing sessions to be persisted in various backends and screens to be wired to any
transition implementation.

# Key Interfaces

  - Transitions: The five navigation operations a screen view can invoke.
  - StateStore: Persists and loads session AppState.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - Backend: The query interface screen views use to read issue records.
*/
package ports
