// Package tasks defines the todo-list task model and its SQLite-backed store.
//
// Tasks belong to a single Telegram user, carry a free-form description, a
// category, and an optional deadline rendered as local "YYYY-MM-DD HH:MM:SS"
// text. The Store wraps database/sql over the pure-Go sqlite driver and is
// shared by the bot handlers, the reminder sweeps, and the report export.
package tasks
