// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"nailbook-backend/metrics"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

const (
	channelSMS = "sms"
)

// SMSSender delivers a text message and returns the provider's message id.
type SMSSender interface {
	SendSMS(to, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSid, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) SendSMS(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReminderResult counts the outcome of one reminder run.
type ReminderResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type ReminderService struct {
	store  ReminderStore
	sender SMSSender
	zone   *utils.ShopZone
	log    *zap.Logger
	now    func() time.Time
}

func NewReminderService(store ReminderStore, sender SMSSender, zone *utils.ShopZone, log *zap.Logger) *ReminderService {
	return &ReminderService{
		store:  store,
		sender: sender,
		zone:   zone,
		log:    log.Named("reminders"),
		now:    time.Now,
	}
}

// StartScheduler runs SendDailyReminders on spec, evaluated in shop-local
// time. The caller stops the returned cron on shutdown.
func (s *ReminderService) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(s.zone.Location()))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.SendDailyReminders(ctx); err != nil {
			s.log.Error("daily reminders failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", spec, err)
	}

	c.Start()
	s.log.Info("reminder scheduler started", zap.String("spec", spec), zap.String("timezone", s.zone.Name()))
	return c, nil
}

// SendDailyReminders texts every customer with a confirmed appointment on the
// next local day. Appointments already reminded are skipped, so reruns are safe.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (ReminderResult, error) {
	var result ReminderResult
	if s.sender == nil {
		return result, utils.Configuration("SMS reminders are not configured.")
	}

	tomorrow := s.zone.DateParam(s.now().In(s.zone.Location()).AddDate(0, 0, 1))
	from, err := s.zone.DayStartUTC(tomorrow)
	if err != nil {
		return result, err
	}
	to, err := s.zone.NextDayStartUTC(tomorrow)
	if err != nil {
		return result, err
	}

	appts, err := s.store.ListAppointments(ctx, models.AppointmentFilter{
		From:     &from,
		To:       &to,
		Statuses: []models.AppointmentStatus{models.StatusConfirmed},
	})
	if err != nil {
		return result, err
	}

	s.log.Info("processing reminders", zap.String("date", tomorrow), zap.Int("appointments", len(appts)))

	for i := range appts {
		a := &appts[i]
		done, err := s.store.HasSentReminder(ctx, a.ID)
		if err != nil {
			return result, err
		}
		if done || a.PhoneNumber == "" {
			result.Skipped++
			continue
		}
		if s.remind(ctx, a) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	s.log.Info("reminders completed",
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *ReminderService) remind(ctx context.Context, a *models.Appointment) bool {
	message := ReminderMessage(a, s.zone)

	entry := models.ReminderLog{
		AppointmentID: a.ID,
		Phone:         a.PhoneNumber,
		Message:       message,
		Status:        models.ReminderSent,
		Channel:       channelSMS,
		SentAt:        s.now().UTC(),
	}

	sid, err := s.sender.SendSMS(a.PhoneNumber, message)
	if err != nil {
		s.log.Warn("reminder failed", zap.Uint("appointment_id", a.ID), zap.Error(err))
		entry.Status = models.ReminderFailed
		entry.ErrorMessage = err.Error()
	} else {
		s.log.Debug("reminder sent", zap.Uint("appointment_id", a.ID), zap.String("sid", sid))
	}
	metrics.RecordReminder(entry.Status)

	if err := s.store.CreateReminderLog(ctx, &entry); err != nil {
		s.log.Error("failed to log reminder", zap.Uint("appointment_id", a.ID), zap.Error(err))
	}
	return entry.Status == models.ReminderSent
}

const defaultLogLimit = 100

// Logs lists recent reminder attempts, optionally for a single appointment.
func (s *ReminderService) Logs(ctx context.Context, appointmentID *uint) ([]models.ReminderLog, error) {
	return s.store.ListReminderLogs(ctx, appointmentID, defaultLogLimit)
}

// Enabled reports whether a sender is configured.
func (s *ReminderService) Enabled() bool {
	return s.sender != nil
}

// ReminderMessage renders the reminder text in shop-local time.
func ReminderMessage(a *models.Appointment, zone *utils.ShopZone) string {
	msg := fmt.Sprintf("Hi %s, this is a reminder of your %s appointment tomorrow at %s",
		a.CustomerName, a.ServiceName, zone.Format(a.ScheduledAt, utils.ClockLayout))
	if a.NailTech != nil {
		msg += " with " + a.NailTech.Name
	}
	return msg + "."
}
