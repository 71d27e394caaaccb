package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"travelmate/internal/models/request_models"
	"travelmate/internal/models/response_models"
	"travelmate/pkg/utils"
)

func exportItinerary() response_models.TravelItinerary {
	return response_models.TravelItinerary{
		Destination: "杭州",
		Duration:    2,
		Budget:      3000,
		Travelers:   2,
		Days: []response_models.DayPlan{
			{Date: "2024-06-01", Activities: []response_models.Activity{
				{Time: "08:30", Activity: "早餐", Location: "酒店餐厅", Description: "简餐", EstimatedCost: response_models.KnownCost(60)},
				{Time: "上午", Activity: "西湖", Location: "西湖", EstimatedCost: response_models.KnownCost(0)},
				{Time: "22:00", Activity: "住宿", Location: "湖滨酒店", Description: "预计 1 间 · 舒适", EstimatedCost: response_models.Cost{}},
			}},
			{Date: "第二天", Activities: []response_models.Activity{
				{Time: "12:00", Activity: "午餐", EstimatedCost: response_models.KnownCost(120)},
			}},
			{Date: "2024-06-02", Activities: []response_models.Activity{
				{Time: "12:00", Activity: "午餐", EstimatedCost: response_models.KnownCost(120.5)},
			}},
		},
		TotalEstimatedCost: 300.5,
	}
}

func TestItineraryCalendar(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cal := ItineraryCalendar("杭州 2日游", "plan-1", exportItinerary(), stamp)

	parsed, err := ics.ParseCalendar(strings.NewReader(cal.Serialize()))
	require.NoError(t, err)

	events := parsed.Events()
	require.Len(t, events, 4, "the day with an unreadable date is skipped")

	first := events[0]
	assert.Equal(t, "plan-1-0-0@travelmate", first.Id())
	assert.Equal(t, "早餐", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "酒店餐厅", first.GetProperty(ics.ComponentPropertyLocation).Value)

	start, err := first.GetStartAt()
	require.NoError(t, err)
	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 6, 1, 0, 30, 0, 0, time.UTC)), "08:30 China time, got %s", start)
	assert.Equal(t, time.Hour, end.Sub(start))

	noClock, err := events[1].GetStartAt()
	require.NoError(t, err)
	assert.True(t, noClock.Equal(time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)), "falls back to 09:00, got %s", noClock)

	assert.Contains(t, events[2].GetProperty(ics.ComponentPropertyDescription).Value, "待定")
	assert.Equal(t, "plan-1-2-0@travelmate", events[3].Id())
}

func TestEventClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08:00", "08:00"},
		{"8:05", "08:05"},
		{"09:00-11:00", "09:00"},
		{"14：30", "14:30"},
		{"下午", "09:00"},
		{"25:00", "09:00"},
		{"", "09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, eventClock(tt.in))
		})
	}
}

func TestItinerarySpreadsheet(t *testing.T) {
	data, err := ItinerarySpreadsheet(exportItinerary(), zap.NewNop())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ItinerarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ItinerarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1+5+1)
	assert.Equal(t, []string{"日期", "时间", "活动", "地点", "描述", "费用(元)"}, rows[0])
	assert.Equal(t, []string{"2024-06-01", "08:30", "早餐", "酒店餐厅", "简餐", "60"}, rows[1])
	assert.Equal(t, "住宿", rows[3][2])
	if len(rows[3]) > 5 {
		assert.Empty(t, rows[3][5], "unknown cost stays blank")
	}
	assert.Equal(t, "120.5", rows[5][5])
	assert.Equal(t, "合计", rows[6][0])
	assert.Equal(t, "300.5", rows[6][5])
}

func TestExportService_RespectsOwnership(t *testing.T) {
	plans, _ := newTestPlanService(t)
	ctx := context.Background()

	created, err := plans.CreatePlan(ctx, "owner", request_models.CreateTravelPlanRequest{Itinerary: exportItinerary()})
	require.NoError(t, err)

	svc := NewExportService(plans, zap.NewNop())

	file, err := svc.ExportICal(ctx, "owner", created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeICal, file.ContentType)
	assert.True(t, strings.HasSuffix(file.Name, ".ics"))
	assert.Contains(t, string(file.Data), "BEGIN:VCALENDAR")

	sheet, err := svc.ExportSpreadsheet(ctx, "owner", created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, sheet.ContentType)
	assert.NotEmpty(t, sheet.Data)

	_, err = svc.ExportICal(ctx, "stranger", created.ID.String())
	assert.ErrorIs(t, err, utils.ErrForbidden)
	_, err = svc.ExportSpreadsheet(ctx, "owner", "missing")
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}
