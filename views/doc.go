// Package views builds the JSON view models the explorer serves: routes
// grid, trips list, stop-times table, departures board, timetable grid, map,
// and alerts table. Builders query the external engine, push every time and
// delay through the reconcile package, and return plain structs ready for
// serialization. They hold no mutable state of their own.
package views
