// Package reminder sends the scheduled expense and task nudges.
// Expense reminders fire at fixed wall-clock hours; task reminders
// read the task list and format a digest of what is still pending.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndhuy/chitieu/internal/sheets"
	"github.com/ndhuy/chitieu/internal/subscribers"
)

// Reminder hours, wall clock in the configured timezone.
var (
	expenseHours = map[int]bool{12: true, 18: true, 22: true}
	taskHours    = map[int]bool{7: true, 8: true, 9: true, 13: true, 18: true}
)

const (
	broadcastConcurrency = 5
	sendAttempts         = 3
)

// TaskLister reads back the stored task list.
type TaskLister interface {
	ListTasks(ctx context.Context) ([]sheets.TaskRow, error)
}

// SubscriberLister enumerates the chats to notify.
type SubscriberLister interface {
	List(ctx context.Context) ([]subscribers.Subscriber, error)
}

// Sender delivers one message to one chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Reminder wires the schedule to its collaborators.
type Reminder struct {
	logger *log.Logger
	tasks  TaskLister
	subs   SubscriberLister
	sender Sender
	loc    *time.Location
}

// New creates a Reminder.
func New(logger *log.Logger, tasks TaskLister, subs SubscriberLister, sender Sender, loc *time.Location) *Reminder {
	return &Reminder{logger: logger, tasks: tasks, subs: subs, sender: sender, loc: loc}
}

// RunDue fires whatever reminders are due at now and returns a short
// description of each action taken. Reminders only fire at minute 0,
// matching an hourly external scheduler.
func (r *Reminder) RunDue(ctx context.Context, now time.Time) ([]string, error) {
	local := now.In(r.loc)
	if local.Minute() != 0 {
		return nil, nil
	}

	var actions []string
	hour := local.Hour()

	if expenseHours[hour] {
		if err := r.SendExpenseReminder(ctx, hour); err != nil {
			return actions, err
		}
		actions = append(actions, fmt.Sprintf("sent expense reminder for %02d:00", hour))
	}
	if taskHours[hour] {
		if err := r.SendTaskReminder(ctx, hour); err != nil {
			return actions, err
		}
		actions = append(actions, fmt.Sprintf("sent task reminder for %02d:00", hour))
	}
	return actions, nil
}

// Start runs an in-process ticker that checks the schedule once a
// minute until ctx is cancelled. Deployments on an external scheduler
// use RunDue directly instead.
func (r *Reminder) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	var lastFired time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			local := now.In(r.loc)
			// The minute tick can land twice in the same minute after
			// clock adjustments; fire at most once per hour slot.
			if local.Minute() != 0 || local.Truncate(time.Hour).Equal(lastFired) {
				continue
			}
			lastFired = local.Truncate(time.Hour)
			actions, err := r.RunDue(ctx, now)
			if err != nil {
				r.logger.Error("Failed to send reminders", "error", err)
				continue
			}
			for _, a := range actions {
				r.logger.Info("Reminder sent", "action", a)
			}
		}
	}
}

// SendExpenseReminder broadcasts the expense nudge for the given hour.
func (r *Reminder) SendExpenseReminder(ctx context.Context, hour int) error {
	msg := expenseMessage(hour)
	if msg == "" {
		return nil
	}
	return r.broadcast(ctx, msg)
}

// SendTaskReminder reads the task list and broadcasts a digest of
// pending tasks.
func (r *Reminder) SendTaskReminder(ctx context.Context, hour int) error {
	tasks, err := r.tasks.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	return r.broadcast(ctx, taskDigest(tasks, hour))
}

// broadcast sends text to every subscriber, a few chats at a time. A
// failed chat is logged and skipped so one blocked user cannot starve
// the rest.
func (r *Reminder) broadcast(ctx context.Context, text string) error {
	subs, err := r.subs.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(broadcastConcurrency)

	for _, sub := range subs {
		g.Go(func() error {
			err := retry.Do(
				func() error { return r.sender.Send(gCtx, sub.ChatID, text) },
				retry.Context(gCtx),
				retry.Attempts(sendAttempts),
			)
			if err != nil {
				r.logger.Error("Failed to send reminder", "chat_id", sub.ChatID, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}
