/*
Package ports defines the driven ports (interfaces) for the colorchanger engine.

These interfaces decouple the session state machine from storage and transport,
so the same engine runs behind HTTP, MCP or the console simulator.

# Key Interfaces

  - SessionEngine: the stateless request handler (internal/runtime).
  - SessionStore: persists and loads session state between turns.
  - DistributedLocker: serializes turns of one session across replicas.
*/
package ports
