package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TempIDPrefix 客户端尚未持久化的时段使用的本地临时标识前缀（如 "temp-1"）
const TempIDPrefix = "temp-"

// EntryRef 时段身份：Unpersisted（客户端新建、尚未落库）或 Persisted(id)。
//
// 协调引擎按该类型决定插入还是更新，而不是在业务代码里嗅探字符串前缀；
// 前缀只在 JSON 解码这一处识别。
type EntryRef struct {
	id string
}

// Unpersisted 未落库的时段
func Unpersisted() EntryRef { return EntryRef{} }

// Persisted 已落库的时段
func Persisted(id string) EntryRef { return EntryRef{id: id} }

// IsPersisted 是否指向已落库的时段
func (r EntryRef) IsPersisted() bool { return r.id != "" }

// ID 已落库时段的主键；Unpersisted 返回空串
func (r EntryRef) ID() string { return r.id }

func (r EntryRef) String() string {
	if !r.IsPersisted() {
		return "unpersisted"
	}
	return r.id
}

// ParseEntryRef 解析客户端传入的标识：空串或 temp- 前缀视为未落库
func ParseEntryRef(raw string) EntryRef {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, TempIDPrefix) {
		return Unpersisted()
	}
	return Persisted(raw)
}

// UnmarshalJSON 接受字符串、数字或 null
func (r *EntryRef) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null" || s == "":
		*r = Unpersisted()
		return nil
	case strings.HasPrefix(s, `"`):
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*r = ParseEntryRef(raw)
		return nil
	default:
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("无效的时段标识: %s", s)
		}
		*r = ParseEntryRef(s)
		return nil
	}
}

// MarshalJSON 未落库时输出 null
func (r EntryRef) MarshalJSON() ([]byte, error) {
	if !r.IsPersisted() {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
