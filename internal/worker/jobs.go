package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"project-hub/backend/internal/models"

	"gorm.io/gorm"
)

// DueReminderHandler notifies about a task reaching its due date. Tasks
// finished or deleted after the job was scheduled are skipped silently.
func DueReminderHandler(db *gorm.DB) JobHandler {
	return func(ctx context.Context, job *Job) error {
		rawID, ok := job.Payload["task_id"].(float64)
		if !ok {
			return fmt.Errorf("due reminder job missing task_id")
		}
		taskID := uint(rawID)

		var task models.Task
		err := db.WithContext(ctx).Preload("AssignedTo").First(&task, taskID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return fmt.Errorf("failed to load task %d: %w", taskID, err)
		}

		if task.Status == models.StatusDone {
			return nil
		}

		assignee := "unassigned"
		if task.AssignedTo != nil {
			assignee = task.AssignedTo.Username
		}
		log.Printf("Reminder: task %d (%q) is due at %s, assigned to %s",
			task.ID, task.Title, task.DueDate.Format(time.RFC3339), assignee)
		return nil
	}
}

// TokenCleanupHandler purges expired refresh tokens, then schedules the next
// sweep on the given queue after interval. A failed sweep is retried by the
// worker; only a finished one schedules its successor.
func TokenCleanupHandler(db *gorm.DB, jobs *JobQueue, queue string, interval time.Duration) JobHandler {
	return func(ctx context.Context, job *Job) error {
		result := db.WithContext(ctx).
			Where("expires_at < ?", time.Now()).
			Delete(&models.Token{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete expired tokens: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			log.Printf("Token cleanup removed %d expired tokens", result.RowsAffected)
		}

		if err := jobs.EnqueueAt(queue, JobTypeTokenCleanup, nil, time.Now().Add(interval)); err != nil {
			log.Printf("Failed to schedule next token cleanup: %v", err)
		}
		return nil
	}
}
