package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"whereabouts/backend/internal/model"
)

// ── 日历订阅（iCalendar）──────────────────────────────────────
//
// 每个时段对应一个 VEVENT：
//   - DTSTART/DTEND 使用浮动时间（不带 Z），与时段按原样保存的本地钟点一致
//   - UID 取时段 ID，时段更新后客户端按 UID 覆盖
//   - LOCATION/GEO 只在有值时输出
// ─────────────────────────────────────────────────────────────

const (
	icsProductID    = "-//whereabouts//vendor availability//ZH"
	icsUIDSuffix    = "@whereabouts"
	icsFloatingTime = "20060102T150405"
)

// VendorCalendar 生成商家全部时段的 .ics 内容与建议文件名
func (s *exportService) VendorCalendar(ctx context.Context, vendorID string) ([]byte, string, error) {
	vendor, err := s.repo.Vendor.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrVendorNotFound
		}
		s.logger.Error("查询商家失败", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.ListByVendor(ctx, vendorID)
	if err != nil {
		s.logger.Error("查询商家时段失败", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(vendor.Name)

	for i := range schedules {
		addScheduleEvent(cal, vendor, &schedules[i])
	}

	return []byte(cal.Serialize()), fmt.Sprintf("%s.ics", vendor.Name), nil
}

func addScheduleEvent(cal *ics.Calendar, vendor *model.Vendor, sc *model.VendorSchedule) {
	event := cal.AddEvent(sc.ScheduleID + icsUIDSuffix)
	event.SetDtStampTime(sc.UpdatedAt)
	event.SetProperty(ics.ComponentPropertyDtStart, wallClock(time.Time(sc.StartDate), sc.StartTime).Format(icsFloatingTime))
	event.SetProperty(ics.ComponentPropertyDtEnd, wallClock(time.Time(sc.EndDate), sc.EndTime).Format(icsFloatingTime))
	event.SetSummary(vendor.Name)

	if vendor.Link != nil && *vendor.Link != "" {
		event.SetURL(*vendor.Link)
	}
	if sc.Address != nil && *sc.Address != "" {
		event.SetLocation(*sc.Address)
	}
	if sc.Latitude != nil && sc.Longitude != nil {
		event.SetProperty(ics.ComponentPropertyGeo,
			strconv.FormatFloat(*sc.Latitude, 'f', -1, 64)+";"+strconv.FormatFloat(*sc.Longitude, 'f', -1, 64))
	}
}
