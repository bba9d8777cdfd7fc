package services

import (
	"context"
	"fmt"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/utils"
)

const upcomingDays = 7

type UpcomingAppointment struct {
	ID           uint   `json:"id"`
	CustomerName string `json:"customerName"`
	ServiceName  string `json:"serviceName"`
	NailTech     string `json:"nailTech,omitempty"`
	Time         string `json:"time"`
	Date         string `json:"date"` // "Today", "Tomorrow", "3 days"
}

type DashboardOverview struct {
	Today         string                           `json:"today"`
	TodayByStatus map[models.AppointmentStatus]int `json:"todayByStatus"`
	TodayCount    int                              `json:"todayCount"`
	Upcoming      []UpcomingAppointment            `json:"upcoming"`
	Revenue       *RevenueSummary                  `json:"revenue"`
}

type DashboardService struct {
	appointments AppointmentStore
	revenue      *RevenueService
	zone         *utils.ShopZone
	now          func() time.Time
}

func NewDashboardService(appointments AppointmentStore, revenue *RevenueService, zone *utils.ShopZone) *DashboardService {
	return &DashboardService{appointments: appointments, revenue: revenue, zone: zone, now: time.Now}
}

// Overview summarizes today's book and the confirmed appointments of the
// coming week.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	now := s.now()
	today := s.zone.DateParam(now)
	from, err := s.zone.DayStartUTC(today)
	if err != nil {
		return nil, err
	}
	todayEnd, err := s.zone.NextDayStartUTC(today)
	if err != nil {
		return nil, err
	}
	weekEnd := from.In(s.zone.Location()).AddDate(0, 0, upcomingDays).UTC()

	appts, err := s.appointments.ListAppointments(ctx, models.AppointmentFilter{From: &from, To: &weekEnd})
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		Today:         today,
		TodayByStatus: map[models.AppointmentStatus]int{},
		Upcoming:      []UpcomingAppointment{},
	}
	localToday := s.zone.BucketStart(now, utils.GranularityDay).In(s.zone.Location())
	for _, a := range appts {
		if a.ScheduledAt.Before(todayEnd) {
			overview.TodayByStatus[a.Status]++
			overview.TodayCount++
		}
		if a.Status != models.StatusConfirmed || a.ScheduledAt.Before(now) {
			continue
		}

		local := a.ScheduledAt.In(s.zone.Location())
		var label string
		switch days := utils.DaysBetween(localToday, local); days {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", days)
		}

		item := UpcomingAppointment{
			ID:           a.ID,
			CustomerName: a.CustomerName,
			ServiceName:  a.ServiceName,
			Time:         local.Format(utils.ClockLayout),
			Date:         label,
		}
		if a.NailTech != nil {
			item.NailTech = a.NailTech.Name
		}
		overview.Upcoming = append(overview.Upcoming, item)
	}

	if overview.Revenue, err = s.revenue.Summary(ctx); err != nil {
		return nil, err
	}
	return overview, nil
}
