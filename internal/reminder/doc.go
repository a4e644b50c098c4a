// Package reminder sweeps the task store for deadlines that fall due soon and
// notifies the owning users.
//
// A SweepService performs one notification pass over the due window, and a
// Scheduler repeats sweeps on a polling loop gated by a daily start time and a
// minimum spacing between consecutive sweeps.
package reminder
