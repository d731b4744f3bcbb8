package model

import (
	"encoding/json"
	"testing"
)

func TestEntryRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in            string
		wantPersisted bool
		wantID        string
	}{
		{`"temp-1"`, false, ""},
		{`"temp-abc-123"`, false, ""},
		{`""`, false, ""},
		{`null`, false, ""},
		{`"6f1c2d9e-3a7b-4c1d-9e2f-0a1b2c3d4e5f"`, true, "6f1c2d9e-3a7b-4c1d-9e2f-0a1b2c3d4e5f"},
		{`42`, true, "42"},
	}

	for _, tt := range tests {
		var payload struct {
			ID EntryRef `json:"id"`
		}
		if err := json.Unmarshal([]byte(`{"id":`+tt.in+`}`), &payload); err != nil {
			t.Fatalf("解析 %s 失败: %v", tt.in, err)
		}
		if payload.ID.IsPersisted() != tt.wantPersisted {
			t.Errorf("%s: 期望 persisted=%v", tt.in, tt.wantPersisted)
		}
		if payload.ID.ID() != tt.wantID {
			t.Errorf("%s: 期望 id=%q，实际=%q", tt.in, tt.wantID, payload.ID.ID())
		}
	}
}

func TestEntryRef_MissingFieldIsUnpersisted(t *testing.T) {
	var payload struct {
		ID EntryRef `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if payload.ID.IsPersisted() {
		t.Error("缺省 id 应视为未落库")
	}
}

func TestEntryRef_RejectsGarbage(t *testing.T) {
	var ref EntryRef
	if err := ref.UnmarshalJSON([]byte(`{"x":1}`)); err == nil {
		t.Error("对象类型的 id 应报错")
	}
}

func TestEntryRef_MarshalJSON(t *testing.T) {
	b, _ := json.Marshal(Unpersisted())
	if string(b) != "null" {
		t.Errorf("Unpersisted 期望 null，实际=%s", b)
	}
	b, _ = json.Marshal(Persisted("s-1"))
	if string(b) != `"s-1"` {
		t.Errorf(`Persisted 期望 "s-1"，实际=%s`, b)
	}
}
