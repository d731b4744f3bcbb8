package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

const exportSheet = "出摊表"

var exportHeaders = []string{"商家", "链接", "摊主", "联系邮箱", "开始日期", "结束日期", "开始时间", "结束时间", "地址", "纬度", "经度"}

// ExportService 导出业务接口
//
// 导出内容与 ListActive 一致（每个时段一行），
// 以 bytes.Buffer 返回，由 Handler 层设置响应头后写出。
type ExportService interface {
	// ExportActive 导出指定日期（nil 为全部）的出摊表，返回内容与建议文件名
	ExportActive(ctx context.Context, onDate *time.Time) (*bytes.Buffer, string, error)
	// VendorCalendar 导出商家全部时段为 iCalendar，供日历应用订阅
	VendorCalendar(ctx context.Context, vendorID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportActive: 导出出摊表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "出摊表"
//   - 第 1 行标题（日期或"全部"），第 2 行表头，之后每个时段一行

func (s *exportService) ExportActive(ctx context.Context, onDate *time.Time) (*bytes.Buffer, string, error) {
	schedules, err := s.repo.Schedule.ListActive(ctx, onDate)
	if err != nil {
		s.logger.Error("查询出摊时段失败", zap.Error(err))
		return nil, "", err
	}

	rows := make([]dto.ActiveScheduleResponse, 0, len(schedules))
	for i := range schedules {
		rows = append(rows, toActiveScheduleResponse(&schedules[i]))
	}

	label := "全部"
	if onDate != nil {
		label = onDate.Format(dateLayout)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(len(exportHeaders) - 1)
	f.SetColWidth(exportSheet, "A", "A", 20)
	f.SetColWidth(exportSheet, "B", lastCol, 14)
	f.SetColWidth(exportSheet, "I", "I", 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(exportSheet, "A1", fmt.Sprintf("出摊表（%s）", label))
	f.MergeCell(exportSheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(exportSheet, "A1", "A1", headerStyle)

	// 表头
	for i, h := range exportHeaders {
		f.SetCellValue(exportSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(exportSheet, "A2", cell(lastCol, 2), headerStyle)

	// 数据行
	for i, r := range rows {
		row := 3 + i
		values := []interface{}{
			r.Name, deref(r.Link), deref(r.UserName), deref(r.UserEmail),
			r.StartDate, r.EndDate, r.StartTime, r.EndTime, deref(r.Address),
			derefFloat(r.Latitude), derefFloat(r.Longitude),
		}
		for col, v := range values {
			f.SetCellValue(exportSheet, cell(colName(col), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("出摊表_%s.xlsx", label)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// derefFloat 空值导出为空单元格
func derefFloat(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
