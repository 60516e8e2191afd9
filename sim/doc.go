// Package sim provides the tick-driven engine of the dispatch simulator.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - emergency.go: Emergency lifecycle (assigned → handling → resolved or failed)
//   - allocation.go: Asset allocation at a base and the request cascade between bases
//   - simulator.go: The tick loop and its phases (emergency, planning, update)
//
// # Architecture
//
// The sim package holds the world model and the controllers that drive it;
// supporting code lives in sub-packages:
//   - sim/graph/: Directed graph with deterministic multi-target Dijkstra
//   - sim/journal/: The run journal, its record formats and statistics
//
// The world is flat state: roads, bases, vehicles, staff and emergencies are
// plain structs referencing each other by id through the World lookups.
// Navigation reads the live road weights, so every active event changes the
// answers it gives.
//
// # Determinism
//
// A run is a pure function of its configuration. All iteration is over
// id-sorted slices, map lookups never decide an order, and ties are broken
// by the smaller id.
package sim
