package telegram

// Reply texts sent back to users. These are user-facing strings; changing
// them changes the bot's conversational contract.
const (
	welcomeMessageConstant               = "Welcome to your personal To-Do List Bot!"
	addUsageMessageConstant              = "Usage: /add <description>; <category>; <deadline: YYYY-MM-DD HH:MM>"
	invalidDeadlineMessageConstant       = "Invalid date format. Use YYYY-MM-DD HH:MM."
	taskAddedMessageConstant             = "Task added successfully!"
	addDatabaseErrorMessageConstant      = "Failed to add task due to a database error."
	listDatabaseErrorMessageConstant     = "Failed to list tasks due to a database error."
	noTasksFoundMessageConstant          = "No tasks found."
	taskLineTemplateConstant             = "%s - %s - due by %s"
	deleteUsageMessageConstant           = "Usage: /delete <task_id>"
	taskNotOwnedMessageConstant          = "Task not found or does not belong to you."
	taskDeletedMessageConstant           = "Task deleted successfully!"
	deleteDatabaseErrorMessageConstant   = "Failed to delete task due to a database error."
	completeUsageMessageConstant         = "Usage: /complete <task_id>"
	taskNotCompletableMessageConstant    = "Task not found or already completed."
	taskCompletedMessageConstant         = "Task marked as completed successfully!"
	completeDatabaseErrorMessageConstant = "Failed to complete task due to a database error."
)

const (
	startCommandNameConstant    = "start"
	addCommandNameConstant      = "add"
	listCommandNameConstant     = "list"
	deleteCommandNameConstant   = "delete"
	completeCommandNameConstant = "complete"
)
