// Package bot wires the Telegram-facing commands: the long-running bot loop
// combining update polling with the reminder scheduler, and the one-shot
// notify sweep for cron-style use.
package bot
