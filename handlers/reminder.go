package handlers

import (
	"net/http"
	"time"

	"github.com/taskforge/task-tracker/services"
)

// ReminderHandler exposes the manual trigger for the deadline digest.
type ReminderHandler struct {
	reminder *services.ReminderService
}

func NewReminderHandler(reminder *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminder: reminder}
}

// Trigger runs the digest synchronously. Same code path as the cron
// trigger; only the caller differs.
func (h *ReminderHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	h.reminder.Run(time.Now())
	w.Write([]byte("Triggered email reminder manually"))
}
