package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/model"
	"whereabouts/backend/internal/repository"
	pkgerrors "whereabouts/backend/pkg/errors"
)

// ReconcileResult 一次协调的写入统计
type ReconcileResult struct {
	Inserted int
	Updated  int
}

// ReconcileEngine 时段协调引擎：把客户端提交的时段列表合并进已落库的状态
//
// 规则：
//   - Unpersisted 条目插入为该商家的新时段，未给出的地理字段保持为空
//   - Persisted(id) 条目做部分更新：日期与时刻总是改写，经纬度与地址仅在提交时改写
//   - 未出现在提交列表中的时段保持不动（删除走单独的接口）
//
// Apply 必须在调用方开启的事务内执行，并且调用前已完成归属校验。
type ReconcileEngine struct {
	logger *zap.Logger
}

// NewReconcileEngine 创建协调引擎
func NewReconcileEngine(logger *zap.Logger) *ReconcileEngine {
	return &ReconcileEngine{logger: logger}
}

type pendingEntry struct {
	ref    model.EntryRef
	window ScheduleWindow
	req    *dto.ScheduleEntryRequest
}

// Apply 协调一批时段；任何一条失败都返回错误，由外层事务整体回滚
func (e *ReconcileEngine) Apply(ctx context.Context, tx *repository.Repository, vendorID string, entries []dto.ScheduleEntryRequest) (*ReconcileResult, error) {
	// 1. 先整体校验，全部通过后再写入
	pending := make([]pendingEntry, 0, len(entries))
	for i := range entries {
		w, err := windowFromEntry(&entries[i])
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "时段 #%d", i+1)
		}
		pending = append(pending, pendingEntry{ref: entries[i].ID, window: w, req: &entries[i]})
	}

	// 2. 逐条插入或更新
	result := &ReconcileResult{}
	for _, p := range pending {
		if !p.ref.IsPersisted() {
			if err := e.insert(ctx, tx, vendorID, p); err != nil {
				return nil, err
			}
			result.Inserted++
			continue
		}
		if err := e.update(ctx, tx, vendorID, p); err != nil {
			return nil, err
		}
		result.Updated++
	}

	return result, nil
}

func (e *ReconcileEngine) insert(ctx context.Context, tx *repository.Repository, vendorID string, p pendingEntry) error {
	schedule := &model.VendorSchedule{
		VendorID:  vendorID,
		Latitude:  p.req.Latitude,
		Longitude: p.req.Longitude,
		Address:   p.req.Address,
	}
	p.window.applyTo(schedule)

	if err := tx.Schedule.Create(ctx, schedule); err != nil {
		e.logger.Error("插入时段失败", zap.String("vendor_id", vendorID), zap.Error(err))
		return err
	}
	return nil
}

func (e *ReconcileEngine) update(ctx context.Context, tx *repository.Repository, vendorID string, p pendingEntry) error {
	// 主键为 UUID，其余格式（如旧客户端的数字 ID）不可能命中
	if !isUUID(p.ref.ID()) {
		return ErrScheduleNotFound
	}

	schedule, err := tx.Schedule.GetByIDForVendor(ctx, vendorID, p.ref.ID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		e.logger.Error("查询时段失败", zap.String("schedule_id", p.ref.ID()), zap.Error(err))
		return err
	}

	p.window.applyTo(schedule)
	if p.req.Latitude != nil {
		schedule.Latitude = p.req.Latitude
	}
	if p.req.Longitude != nil {
		schedule.Longitude = p.req.Longitude
	}
	if p.req.Address != nil {
		schedule.Address = p.req.Address
	}

	if err := tx.Schedule.Update(ctx, schedule); err != nil {
		e.logger.Error("更新时段失败", zap.String("schedule_id", schedule.ScheduleID), zap.Error(err))
		return err
	}
	return nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
