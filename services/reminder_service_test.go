package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"nailbook-backend/models"
)

type fakeSender struct {
	mu   sync.Mutex
	sent map[string]string
	fail map[string]bool
}

func (f *fakeSender) SendSMS(to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[to] {
		return "", errors.New("undeliverable")
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = body
	return "SM" + to, nil
}

func TestSendDailyReminders(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	sender := &fakeSender{fail: map[string]bool{"+15555550199": true}}
	svc := NewReminderService(store, sender, testZone(), testLogger())
	// 2025-07-01 09:00 PDT
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 16, 0, 0, 0, time.UTC) }

	tomorrow2pm := time.Date(2025, 7, 2, 21, 0, 0, 0, time.UTC)
	store.SeedAppointment(models.Appointment{ScheduledAt: tomorrow2pm, Status: models.StatusConfirmed,
		CustomerName: "Jane", PhoneNumber: "+15555550100", ServiceName: "Gel Manicure"})
	store.SeedAppointment(models.Appointment{ScheduledAt: tomorrow2pm.Add(time.Hour), Status: models.StatusConfirmed,
		CustomerName: "Ivy", PhoneNumber: "+15555550199", ServiceName: "Pedicure"})
	store.SeedAppointment(models.Appointment{ScheduledAt: tomorrow2pm, Status: models.StatusCancelled,
		CustomerName: "Cancelled", PhoneNumber: "+15555550101", ServiceName: "Gel Manicure"})
	// 2025-07-03 00:30 PDT belongs to the day after tomorrow
	store.SeedAppointment(models.Appointment{ScheduledAt: time.Date(2025, 7, 3, 7, 30, 0, 0, time.UTC), Status: models.StatusConfirmed,
		CustomerName: "Later", PhoneNumber: "+15555550102", ServiceName: "Gel Manicure"})

	res, err := svc.SendDailyReminders(ctx)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Sent != 1 || res.Failed != 1 {
		t.Fatalf("expected 1 sent and 1 failed, got %+v", res)
	}
	body := sender.sent["+15555550100"]
	if !strings.Contains(body, "Jane") || !strings.Contains(body, "2:00 PM") {
		t.Fatalf("unexpected message %q", body)
	}
	if len(store.Reminders()) != 2 {
		t.Fatalf("expected 2 reminder logs, got %d", len(store.Reminders()))
	}

	again, err := svc.SendDailyReminders(ctx)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if again.Sent != 0 || again.Skipped != 1 || again.Failed != 1 {
		t.Fatalf("rerun must skip delivered reminders and retry failures, got %+v", again)
	}
}

func TestReminderLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewReminderService(store, &fakeSender{}, testZone(), testLogger())
	for _, id := range []uint{1, 2, 1} {
		_ = store.CreateReminderLog(ctx, &models.ReminderLog{AppointmentID: id, Status: models.ReminderSent})
	}

	logs, err := svc.Logs(ctx, uintPtr(1))
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if len(logs) != 2 || logs[0].ID < logs[1].ID {
		t.Fatalf("expected two logs newest first, got %+v", logs)
	}
}

func TestSendDailyRemindersWithoutSender(t *testing.T) {
	svc := NewReminderService(newFakeStore(), nil, testZone(), testLogger())
	if _, err := svc.SendDailyReminders(context.Background()); err == nil {
		t.Fatalf("expected configuration error without a sender")
	}
}
