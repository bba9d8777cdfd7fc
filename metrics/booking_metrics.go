package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	AppointmentsBooked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "appointments_booked_total",
			Help: "Total number of appointments created",
		},
	)

	BookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "appointment_conflicts_total",
			Help: "Total number of bookings rejected because the technician was taken",
		},
	)

	StatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointment_status_changes_total",
			Help: "Total number of appointment status updates by target status",
		},
		[]string{"status"},
	)

	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointment_reminders_total",
			Help: "Total number of reminder messages by outcome",
		},
		[]string{"outcome"},
	)

	ReportCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_report_cache_lookups_total",
			Help: "Revenue report cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordBooking() {
	AppointmentsBooked.Inc()
}

func RecordConflict() {
	BookingConflicts.Inc()
}

func RecordStatusChange(status string) {
	StatusChanges.WithLabelValues(status).Inc()
}

func RecordReminder(outcome string) {
	RemindersSent.WithLabelValues(outcome).Inc()
}

func RecordReportCache(hit bool) {
	if hit {
		ReportCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	ReportCacheLookups.WithLabelValues("miss").Inc()
}
