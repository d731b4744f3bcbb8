package service

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/model"
	pkgerrors "whereabouts/backend/pkg/errors"
)

// 校验失败原因（ValidationError.Reason）
const (
	ReasonMissingFields    = "missing fields"
	ReasonEndBeforeStart   = "end before start"
	ReasonInvalidTimestamp = "invalid timestamp"
	ReasonInvalidDate      = "invalid date"
	ReasonInvalidTime      = "invalid time"
)

const dateLayout = "2006-01-02"

// 时间戳可带秒、可带时区；不带时区时按 UTC 解析
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ScheduleWindow 归一化后的出摊窗口
type ScheduleWindow struct {
	StartDate datatypes.Date
	EndDate   datatypes.Date
	StartTime datatypes.Time
	EndTime   datatypes.Time
}

// WindowFromTimestamps 由完整时间戳对得到窗口（创建路径）
//
// 日期与时刻都取时间戳书写时的墙上时间，不做时区换算；
// 时刻截断到分钟。结束必须严格晚于开始。
func WindowFromTimestamps(start, end string) (ScheduleWindow, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return ScheduleWindow{}, pkgerrors.Validation(ReasonMissingFields)
	}

	s, err := parseWallClock(start)
	if err != nil {
		return ScheduleWindow{}, err
	}
	e, err := parseWallClock(end)
	if err != nil {
		return ScheduleWindow{}, err
	}
	if !e.After(s) {
		return ScheduleWindow{}, pkgerrors.Validation(ReasonEndBeforeStart)
	}

	return ScheduleWindow{
		StartDate: dateOf(s),
		EndDate:   dateOf(e),
		StartTime: datatypes.NewTime(s.Hour(), s.Minute(), 0, 0),
		EndTime:   datatypes.NewTime(e.Hour(), e.Minute(), 0, 0),
	}, nil
}

// WindowFromDateTime 由分开的日期与时刻字符串得到窗口（更新路径）
//
// 时刻接受 HH:MM 与 HH:MM:SS，前者补 ":00"。此路径不校验结束晚于开始。
func WindowFromDateTime(startDate, endDate, startTime, endTime string) (ScheduleWindow, error) {
	for _, v := range []string{startDate, endDate, startTime, endTime} {
		if strings.TrimSpace(v) == "" {
			return ScheduleWindow{}, pkgerrors.Validation(ReasonMissingFields)
		}
	}

	sd, err := parseDate(startDate)
	if err != nil {
		return ScheduleWindow{}, err
	}
	ed, err := parseDate(endDate)
	if err != nil {
		return ScheduleWindow{}, err
	}
	st, err := parseClock(startTime)
	if err != nil {
		return ScheduleWindow{}, err
	}
	et, err := parseClock(endTime)
	if err != nil {
		return ScheduleWindow{}, err
	}

	return ScheduleWindow{StartDate: sd, EndDate: ed, StartTime: st, EndTime: et}, nil
}

// NewScheduleFromTimestamps 创建流程：时间戳对 + 完整地理信息，缺一不可
func NewScheduleFromTimestamps(vendorID, start, end string, lat, lon *float64, address *string) (*model.VendorSchedule, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" ||
		lat == nil || lon == nil || address == nil || strings.TrimSpace(*address) == "" {
		return nil, pkgerrors.Validation(ReasonMissingFields)
	}

	w, err := WindowFromTimestamps(start, end)
	if err != nil {
		return nil, err
	}

	schedule := &model.VendorSchedule{VendorID: vendorID}
	w.applyTo(schedule)
	schedule.Latitude = lat
	schedule.Longitude = lon
	schedule.Address = address
	return schedule, nil
}

// windowFromEntry 按提交形式选择解析路径
func windowFromEntry(e *dto.ScheduleEntryRequest) (ScheduleWindow, error) {
	if e.UsesTimestamps() {
		return WindowFromTimestamps(e.Start, e.End)
	}
	return WindowFromDateTime(e.StartDate, e.EndDate, e.StartTime, e.EndTime)
}

func (w ScheduleWindow) applyTo(s *model.VendorSchedule) {
	s.StartDate = w.StartDate
	s.EndDate = w.EndDate
	s.StartTime = w.StartTime
	s.EndTime = w.EndTime
}

// ── 内部辅助方法 ──

// parseWallClock 解析时间戳并丢弃时区，只保留书写时的墙上时间
func parseWallClock(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		hh, mm, ss := t.Clock()
		return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC), nil
	}
	return time.Time{}, pkgerrors.Validation(ReasonInvalidTimestamp)
}

func parseDate(raw string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return datatypes.Date{}, pkgerrors.Validation(ReasonInvalidDate)
	}
	return datatypes.Date(t), nil
}

func parseClock(raw string) (datatypes.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == len("15:04") {
		raw += ":00"
	}
	t, err := time.Parse("15:04:05", raw)
	if err != nil {
		return 0, pkgerrors.Validation(ReasonInvalidTime)
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

func dateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// wallClock 把日期列与钟点列拼回墙上时间
func wallClock(d time.Time, clock datatypes.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Add(time.Duration(clock))
}

// ParseQueryDate 解析查询参数中的日期；空串表示不限日期
func ParseQueryDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, pkgerrors.Validation(ReasonInvalidDate)
	}
	return &t, nil
}
