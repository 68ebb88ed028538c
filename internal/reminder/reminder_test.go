package reminder

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuy/chitieu/internal/sheets"
	"github.com/ndhuy/chitieu/internal/subscribers"
	"github.com/ndhuy/chitieu/internal/types"
)

type fakeTaskLister struct {
	tasks []sheets.TaskRow
	err   error
}

func (f *fakeTaskLister) ListTasks(context.Context) ([]sheets.TaskRow, error) {
	return f.tasks, f.err
}

type fakeSubscriberLister struct {
	subs []subscribers.Subscriber
	err  error
}

func (f *fakeSubscriberLister) List(context.Context) ([]subscribers.Subscriber, error) {
	return f.subs, f.err
}

type fakeSender struct {
	mu    sync.Mutex
	sent  map[int64][]string
	fail  map[int64]int // remaining failures per chat
	calls int
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[int64][]string), fail: make(map[int64]int)}
}

func (f *fakeSender) Send(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail[chatID] > 0 {
		f.fail[chatID]--
		return errors.New("telegram unavailable")
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func newTestReminder(tasks *fakeTaskLister, subs *fakeSubscriberLister, sender Sender) *Reminder {
	logger := log.New(io.Discard)
	return New(logger, tasks, subs, sender, time.UTC)
}

func chats(ids ...int64) []subscribers.Subscriber {
	out := make([]subscribers.Subscriber, 0, len(ids))
	for _, id := range ids {
		out = append(out, subscribers.Subscriber{ChatID: id})
	}
	return out
}

func TestRunDueSchedule(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		wantActions int
		wantSends   int
	}{
		{
			name:        "noon_expense_only",
			now:         time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC),
			wantActions: 1,
			wantSends:   1,
		},
		{
			name:        "eighteen_fires_both",
			now:         time.Date(2024, 7, 15, 18, 0, 0, 0, time.UTC),
			wantActions: 2,
			wantSends:   2,
		},
		{
			name:        "morning_task_only",
			now:         time.Date(2024, 7, 15, 8, 0, 0, 0, time.UTC),
			wantActions: 1,
			wantSends:   1,
		},
		{
			name:        "off_schedule_hour",
			now:         time.Date(2024, 7, 15, 15, 0, 0, 0, time.UTC),
			wantActions: 0,
			wantSends:   0,
		},
		{
			name:        "nonzero_minute_skipped",
			now:         time.Date(2024, 7, 15, 12, 30, 0, 0, time.UTC),
			wantActions: 0,
			wantSends:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := newFakeSender()
			r := newTestReminder(
				&fakeTaskLister{tasks: []sheets.TaskRow{{TaskRecord: taskNamed("Họp team", "Đang thực hiện")}}},
				&fakeSubscriberLister{subs: chats(100)},
				sender,
			)

			actions, err := r.RunDue(context.Background(), tc.now)
			require.NoError(t, err)
			assert.Len(t, actions, tc.wantActions)
			assert.Len(t, sender.sent[100], tc.wantSends)
		})
	}
}

func TestRunDueRespectsTimezone(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	sender := newFakeSender()
	r := New(log.New(io.Discard), &fakeTaskLister{}, &fakeSubscriberLister{subs: chats(1)}, sender, loc)

	// 05:00 UTC is 12:00 in ICT, so the lunch reminder fires.
	actions, err := r.RunDue(context.Background(), time.Date(2024, 7, 15, 5, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0], "12:00")
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	sender := newFakeSender()
	r := newTestReminder(&fakeTaskLister{}, &fakeSubscriberLister{subs: chats(1, 2, 3)}, sender)

	require.NoError(t, r.SendExpenseReminder(context.Background(), 12))
	for _, id := range []int64{1, 2, 3} {
		assert.Len(t, sender.sent[id], 1, "chat %d", id)
	}
}

func TestBroadcastRetriesAndSkipsFailedChat(t *testing.T) {
	sender := newFakeSender()
	// Chat 1 fails once and recovers on retry; chat 2 exhausts every
	// attempt.
	sender.fail[1] = 1
	sender.fail[2] = sendAttempts

	r := newTestReminder(&fakeTaskLister{}, &fakeSubscriberLister{subs: chats(1, 2, 3)}, sender)

	// One stuck chat must not fail the whole broadcast.
	require.NoError(t, r.SendExpenseReminder(context.Background(), 12))
	assert.Len(t, sender.sent[1], 1)
	assert.Empty(t, sender.sent[2])
	assert.Len(t, sender.sent[3], 1)
}

func TestSendTaskReminderListError(t *testing.T) {
	sender := newFakeSender()
	r := newTestReminder(
		&fakeTaskLister{err: errors.New("sheet unavailable")},
		&fakeSubscriberLister{subs: chats(1)},
		sender,
	)

	err := r.SendTaskReminder(context.Background(), 8)
	require.Error(t, err)
	assert.Zero(t, sender.calls)
}

func TestSubscriberListError(t *testing.T) {
	sender := newFakeSender()
	r := newTestReminder(&fakeTaskLister{}, &fakeSubscriberLister{err: errors.New("db locked")}, sender)

	err := r.SendExpenseReminder(context.Background(), 12)
	require.Error(t, err)
	assert.Zero(t, sender.calls)
}

func taskNamed(name, status string) types.TaskRecord {
	return types.TaskRecord{Name: name, Status: status}
}
