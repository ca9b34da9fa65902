// Package core contains pipeline plumbing: channel helpers, worker and
// process options carried by the context, and the locomotive loop that
// drives one worker line. It holds no business logic; flow and task build
// on it.
package core
