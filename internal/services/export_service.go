package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"travelmate/internal/itinerary"
	"travelmate/internal/models/response_models"
	"travelmate/pkg/utils"
)

const (
	ContentTypeICal = "text/calendar; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	ItinerarySheet = "行程"

	defaultEventTime     = "09:00"
	defaultEventDuration = time.Hour
)

var clockPattern = regexp.MustCompile(`(\d{1,2})[:：](\d{2})`)

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportServiceInterface interface {
	ExportICal(ctx context.Context, userID, planID string) (*ExportFile, error)
	ExportSpreadsheet(ctx context.Context, userID, planID string) (*ExportFile, error)
}

type ExportService struct {
	plans  TravelPlanServiceInterface
	logger *zap.Logger
	now    func() time.Time
}

func NewExportService(plans TravelPlanServiceInterface, logger *zap.Logger) ExportServiceInterface {
	return &ExportService{plans: plans, logger: logger, now: time.Now}
}

func (s *ExportService) ExportICal(ctx context.Context, userID, planID string) (*ExportFile, error) {
	plan, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	cal := ItineraryCalendar(plan.Title, plan.ID.String(), plan.Itinerary, s.now())
	s.logger.Info("exported plan calendar", zap.String("plan_id", planID), zap.Int("events", len(cal.Events())))

	return &ExportFile{
		Name:        "plan-" + plan.ID.String() + ".ics",
		ContentType: ContentTypeICal,
		Data:        []byte(cal.Serialize()),
	}, nil
}

func (s *ExportService) ExportSpreadsheet(ctx context.Context, userID, planID string) (*ExportFile, error) {
	plan, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	data, err := ItinerarySpreadsheet(plan.Itinerary, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exported plan spreadsheet", zap.String("plan_id", planID), zap.Int("bytes", len(data)))

	return &ExportFile{
		Name:        "plan-" + plan.ID.String() + ".xlsx",
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

// ItineraryCalendar builds one VEVENT per activity. Activities on days with an
// unreadable date are skipped; activities without a readable time start at 09:00.
func ItineraryCalendar(title, uidPrefix string, it response_models.TravelItinerary, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//travelmate//itinerary//CN")
	if title != "" {
		cal.SetXWRCalName(title)
	}
	cal.SetXWRTimezone("Asia/Shanghai")

	for d, day := range it.Days {
		if _, err := itinerary.ParseDate(day.Date); err != nil {
			continue
		}
		for a, act := range day.Activities {
			start, err := utils.ParseInCN("2006-01-02 15:04", day.Date+" "+eventClock(act.Time))
			if err != nil {
				continue
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d@travelmate", uidPrefix, d, a))
			event.SetDtStampTime(stamp)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(defaultEventDuration))
			event.SetSummary(act.Activity)
			if act.Location != "" {
				event.SetLocation(act.Location)
			}
			event.SetDescription(eventDescription(act))
		}
	}
	return cal
}

func eventClock(raw string) string {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return defaultEventTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return defaultEventTime
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func eventDescription(act response_models.Activity) string {
	cost := "预计费用：待定"
	if act.EstimatedCost.Usable() {
		cost = "预计费用：¥" + formatAmount(act.EstimatedCost.Amount)
	}
	if act.Description == "" {
		return cost
	}
	return act.Description + "\n" + cost
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ItinerarySpreadsheet renders the itinerary as a single-sheet workbook with a
// trailing total row.
func ItinerarySpreadsheet(it response_models.TravelItinerary, logger *zap.Logger) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), ItinerarySheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	header := []any{"日期", "时间", "活动", "地点", "描述", "费用(元)"}
	if err := f.SetSheetRow(ItinerarySheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(ItinerarySheet, "A1", "F1", bold)
	}

	row := 2
	for _, day := range it.Days {
		for _, act := range day.Activities {
			values := []any{day.Date, act.Time, act.Activity, act.Location, act.Description, ""}
			if act.EstimatedCost.Usable() {
				values[5] = act.EstimatedCost.Amount
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, errors.Wrap(err, "cell name")
			}
			if err := f.SetSheetRow(ItinerarySheet, cell, &values); err != nil {
				return nil, errors.Wrapf(err, "write row %d", row)
			}
			row++
		}
	}

	total := []any{"合计", "", "", "", "", it.TotalEstimatedCost}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(ItinerarySheet, cell, &total); err != nil {
		return nil, errors.Wrap(err, "write total")
	}

	_ = f.SetColWidth(ItinerarySheet, "A", "B", 12)
	_ = f.SetColWidth(ItinerarySheet, "C", "D", 20)
	_ = f.SetColWidth(ItinerarySheet, "E", "E", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}
