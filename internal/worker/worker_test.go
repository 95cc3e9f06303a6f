package worker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupQueue(t *testing.T) (*redis.Client, *JobQueue) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, NewJobQueue(client)
}

func TestJobQueue_Enqueue(t *testing.T) {
	_, queue := setupQueue(t)

	err := queue.Enqueue("reminders", JobTypeDueReminder, map[string]interface{}{"task_id": 1})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	size, err := queue.GetQueueSize("reminders")
	if err != nil {
		t.Fatalf("GetQueueSize failed: %v", err)
	}
	if size != 1 {
		t.Errorf("Expected queue size 1, got %d", size)
	}
}

func TestWorker_ProcessesJob(t *testing.T) {
	client, queue := setupQueue(t)

	worker := NewWorker(WorkerConfig{
		RedisClient: client,
		Queues:      []string{"default"},
	})

	done := make(chan *Job, 1)
	worker.RegisterHandler(JobTypeTokenCleanup, func(ctx context.Context, job *Job) error {
		done <- job
		return nil
	})

	if err := queue.Enqueue("default", JobTypeTokenCleanup, nil); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	worker.Start(1)
	defer worker.Stop()

	select {
	case job := <-done:
		if job.Type != JobTypeTokenCleanup {
			t.Errorf("Expected job type %s, got %s", JobTypeTokenCleanup, job.Type)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Worker did not process job in time")
	}
}

func TestWorker_RequeuesFutureJob(t *testing.T) {
	client, queue := setupQueue(t)

	worker := NewWorker(WorkerConfig{
		RedisClient: client,
		Queues:      []string{"reminders"},
	})

	processed := make(chan struct{}, 1)
	worker.RegisterHandler(JobTypeDueReminder, func(ctx context.Context, job *Job) error {
		processed <- struct{}{}
		return nil
	})

	future := time.Now().Add(time.Hour)
	err := queue.EnqueueAt("reminders", JobTypeDueReminder, map[string]interface{}{"task_id": 2}, future)
	if err != nil {
		t.Fatalf("EnqueueAt failed: %v", err)
	}

	worker.Start(1)
	defer worker.Stop()

	select {
	case <-processed:
		t.Fatal("Job scheduled in the future should not have been processed")
	case <-time.After(500 * time.Millisecond):
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		size, err := queue.GetQueueSize("reminders")
		if err != nil {
			t.Fatalf("GetQueueSize failed: %v", err)
		}
		if size >= 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Expected future job back on the queue")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
