// Package history holds the ordered notification history and the cursor that
// selects which entry is shown on the bar.
//
// A Store is not safe for concurrent use. The daemon serializes every access
// through a single event loop.
package history
