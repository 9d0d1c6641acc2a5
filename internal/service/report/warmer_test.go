package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarmMonthlyReports(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newReportFixture()
	svc := f.service(cache.New(client, time.Minute))
	now := func() time.Time { return time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, WarmMonthlyReports(svc, now)(context.Background()))
	assert.Equal(t, 2, f.employees.calls)

	_, err := svc.ComposeMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 1, Year: 2026})
	require.NoError(t, err)
	_, err = svc.ComposeMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 12, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 2, f.employees.calls)
}

func TestWarmMonthlyReports_OverwritesCachedEntries(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newReportFixture()
	f.employees.active = staff("e1")
	svc := f.service(cache.New(client, time.Hour))
	ctx := context.Background()
	warm := WarmMonthlyReports(svc, func() time.Time { return time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC) })

	stale, err := svc.ComposeMonthlyReport(ctx, december())
	require.NoError(t, err)
	assert.Equal(t, 0, stale.Attendance[0].Present)

	f.attendance.records = presentDays("e1", 1, 2)
	require.NoError(t, warm(ctx))

	fresh, err := svc.ComposeMonthlyReport(ctx, december())
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Attendance[0].Present)
	assert.Equal(t, 3, f.employees.calls)
}
