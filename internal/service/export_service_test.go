package service

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ── ExportActive 测试 ──

func TestExportService_ExportActive(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	u1 := env.owner(t, "U1")
	if _, err := env.svc.Vendor.Create(ctx, u1.OwnerID, tacoCartRequest()); err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}

	day, _ := ParseQueryDate("2024-06-01")
	buf, filename, err := env.svc.Export.ExportActive(ctx, day)
	if err != nil {
		t.Fatalf("ExportActive 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, "2024-06-01.xlsx") {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件应可读取: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望 标题+表头+1 行数据，实际=%d 行", len(rows))
	}
	if rows[2][0] != "Taco Cart" {
		t.Errorf("第一列应为商家名，实际=%s", rows[2][0])
	}
	if rows[2][6] != "10:00:00" {
		t.Errorf("开始时间不符，实际=%s", rows[2][6])
	}
}

func TestExportService_ExportActive_Empty(t *testing.T) {
	env := setupTestEnv(t)

	buf, filename, err := env.svc.Export.ExportActive(context.Background(), nil)
	if err != nil {
		t.Fatalf("空结果也应生成文件: %v", err)
	}
	if !strings.Contains(filename, "全部") {
		t.Errorf("不带日期的文件名应标注全部，实际=%s", filename)
	}
	if buf.Len() == 0 {
		t.Error("文件内容不应为空")
	}
}
