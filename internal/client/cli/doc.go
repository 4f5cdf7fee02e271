// Package cli provides the interactive fittracker command-line client.
//
// It wires configuration, the local session store, the backend gateway and
// the view state holders, and runs a REPL on top of them. Each command plays
// the part of one screen of the tracker:
//   - register / login / logout
//   - home: weekly goal card and the profile completion check
//   - goal: set the weekly calorie target
//   - add: log an activity (requires a goal)
//   - history / week: activity list and the seven day chart
//   - profile / editprofile
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
