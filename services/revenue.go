package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"nailbook-backend/cache"
	"nailbook-backend/metrics"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"go.uber.org/zap"
)

const revenueGenerationKey = "revenue:generation"

type RevenueQuery struct {
	Granularity string `form:"granularity" binding:"omitempty,oneof=day week month"`
	From        string `form:"from" binding:"omitempty,ymd"`
	To          string `form:"to" binding:"omitempty,ymd"`
	Timezone    string `form:"tz"`
}

type RevenueBucket struct {
	BucketStart  time.Time `json:"bucketStart"`
	Count        int       `json:"count"`
	RevenueCents int       `json:"revenueCents"`
}

type RevenueSummary struct {
	CurrentMonthRevenueCents  int     `json:"currentMonthRevenueCents"`
	PreviousMonthRevenueCents int     `json:"previousMonthRevenueCents"`
	MonthGrowth               float64 `json:"monthGrowth"`
	CurrentMonthCount         int     `json:"currentMonthCount"`
	TodayCount                int     `json:"todayCount"`
	TodayRevenueCents         int     `json:"todayRevenueCents"`
}

type RevenueService struct {
	store AppointmentStore
	cache cache.Cache
	ttl   time.Duration
	zone  *utils.ShopZone
	log   *zap.Logger
	now   func() time.Time
}

func NewRevenueService(store AppointmentStore, c cache.Cache, ttl time.Duration, zone *utils.ShopZone, log *zap.Logger) *RevenueService {
	if c == nil {
		c = cache.NewNoop()
	}
	return &RevenueService{
		store: store,
		cache: c,
		ttl:   ttl,
		zone:  zone,
		log:   log.Named("revenue"),
		now:   time.Now,
	}
}

// AggregateRevenue buckets done appointments by the start of their local day,
// week or month. Empty buckets are omitted and the result is ascending.
func AggregateRevenue(appts []models.Appointment, zone *utils.ShopZone, g utils.Granularity) []RevenueBucket {
	byStart := make(map[int64]*RevenueBucket)
	for i := range appts {
		a := &appts[i]
		if a.Status != models.StatusDone {
			continue
		}
		start := zone.BucketStart(a.ScheduledAt, g)
		b, ok := byStart[start.Unix()]
		if !ok {
			b = &RevenueBucket{BucketStart: start}
			byStart[start.Unix()] = b
		}
		b.Count++
		b.RevenueCents += AppointmentTotalCents(SnapshotOf(a))
	}

	out := make([]RevenueBucket, 0, len(byStart))
	for _, b := range byStart {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BucketStart.Before(out[j].BucketStart) })
	return out
}

// Revenue reports done-appointment counts and revenue per local-calendar
// bucket. From is inclusive and To covers its whole local day.
func (s *RevenueService) Revenue(ctx context.Context, q RevenueQuery) ([]RevenueBucket, error) {
	g, err := utils.ParseGranularity(q.Granularity)
	if err != nil {
		return nil, utils.ValidationField("granularity", "granularity must be one of day, week, month.")
	}

	zone := s.zone
	if q.Timezone != "" && q.Timezone != zone.Name() {
		zone, err = utils.NewShopZone(q.Timezone)
		if err != nil {
			return nil, utils.ValidationField("tz", "Unknown timezone.")
		}
	}

	filter := models.AppointmentFilter{Statuses: []models.AppointmentStatus{models.StatusDone}}
	if q.From != "" {
		from, err := zone.DayStartUTC(q.From)
		if err != nil {
			return nil, utils.ValidationField("from", "Invalid date")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := zone.NextDayStartUTC(q.To)
		if err != nil {
			return nil, utils.ValidationField("to", "Invalid date")
		}
		filter.To = &to
	}

	key := s.cacheKey(ctx, g, q.From, q.To, zone.Name())
	if buckets, ok := s.cached(ctx, key); ok {
		return buckets, nil
	}

	appts, err := s.store.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}
	buckets := AggregateRevenue(appts, zone, g)

	s.remember(ctx, key, buckets)
	return buckets, nil
}

// Summary compares this local month with the previous one and adds today's
// completed work.
func (s *RevenueService) Summary(ctx context.Context) (*RevenueSummary, error) {
	now := s.now()
	monthStart := s.zone.BucketStart(now, utils.GranularityMonth).In(s.zone.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	monthEnd := monthStart.AddDate(0, 1, -1)
	today := s.zone.DateParam(now)

	months, err := s.Revenue(ctx, RevenueQuery{
		Granularity: string(utils.GranularityMonth),
		From:        s.zone.DateParam(prevMonthStart),
		To:          s.zone.DateParam(monthEnd),
	})
	if err != nil {
		return nil, err
	}
	days, err := s.Revenue(ctx, RevenueQuery{
		Granularity: string(utils.GranularityDay),
		From:        today,
		To:          today,
	})
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{}
	for _, b := range months {
		switch {
		case b.BucketStart.Equal(monthStart):
			summary.CurrentMonthRevenueCents = b.RevenueCents
			summary.CurrentMonthCount = b.Count
		case b.BucketStart.Equal(prevMonthStart):
			summary.PreviousMonthRevenueCents = b.RevenueCents
		}
	}
	for _, b := range days {
		summary.TodayCount += b.Count
		summary.TodayRevenueCents += b.RevenueCents
	}
	summary.MonthGrowth = calculateGrowthPercentage(
		float64(summary.CurrentMonthRevenueCents),
		float64(summary.PreviousMonthRevenueCents),
	)
	return summary, nil
}

func calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

// Invalidate retires every cached report by moving to a new key generation.
func (s *RevenueService) Invalidate(ctx context.Context) {
	gen := strconv.FormatInt(s.now().UnixNano(), 10)
	if err := s.cache.Set(ctx, revenueGenerationKey, []byte(gen), 0); err != nil {
		s.log.Warn("revenue cache invalidation failed", zap.Error(err))
	}
}

func (s *RevenueService) cacheKey(ctx context.Context, g utils.Granularity, from, to, tz string) string {
	gen := "0"
	if raw, ok, err := s.cache.Get(ctx, revenueGenerationKey); err == nil && ok {
		gen = string(raw)
	}
	return fmt.Sprintf("revenue:%s:%s:%s:%s:%s", gen, g, from, to, tz)
}

func (s *RevenueService) cached(ctx context.Context, key string) ([]RevenueBucket, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("revenue cache read failed", zap.Error(err))
		return nil, false
	}
	metrics.RecordReportCache(ok)
	if !ok {
		return nil, false
	}
	var buckets []RevenueBucket
	if err := json.Unmarshal(raw, &buckets); err != nil {
		return nil, false
	}
	return buckets, true
}

func (s *RevenueService) remember(ctx context.Context, key string, buckets []RevenueBucket) {
	if s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(buckets)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("revenue cache write failed", zap.Error(err))
	}
}
