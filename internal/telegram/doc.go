// Package telegram implements the todo-list bot conversation: command routing
// with the exact reply texts users see, the Bot API transport, and the
// long-polling loop that feeds updates to the router.
package telegram
