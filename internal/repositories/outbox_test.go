package repositories

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestEncodeAttributes(t *testing.T) {
	for _, attrs := range []map[string]string{nil, {}} {
		raw, err := encodeAttributes(attrs)
		if err != nil {
			t.Fatalf("encodeAttributes(%v): %v", attrs, err)
		}
		if string(raw) != "{}" {
			t.Fatalf("expected empty object, got %s", raw)
		}
	}

	raw, err := encodeAttributes(map[string]string{"event_type": "video.created", "occurred_at": "2026-03-14T12:00:00Z"})
	if err != nil {
		t.Fatalf("encodeAttributes: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal attributes: %v", err)
	}
	want := map[string]string{"event_type": "video.created", "occurred_at": "2026-03-14T12:00:00Z"}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("expected %v, got %v", want, decoded)
	}
}

// jsonb 入参在简单协议下依赖 pgx 的客户端类型推断：参数必须解析为
// json 线上类型，否则 Exec 在发送前就会失败。
func TestEnqueueJSONBArgsResolveAsJSON(t *testing.T) {
	m := pgtype.NewMap()

	payload := json.RawMessage(`{"video_id":"v"}`)
	dt, ok := m.TypeForValue(payload)
	if !ok {
		t.Fatal("payload must have an inferable wire type")
	}
	if dt.Name != "json" {
		t.Fatalf("payload must encode as json, got %s (oid %d)", dt.Name, dt.OID)
	}

	attrs, err := encodeAttributes(map[string]string{"event_id": "e"})
	if err != nil {
		t.Fatalf("encodeAttributes: %v", err)
	}
	dt, ok = m.TypeForValue(attrs)
	if !ok {
		t.Fatal("attributes must have an inferable wire type")
	}
	if dt.Name != "json" {
		t.Fatalf("attributes must encode as json, got %s (oid %d)", dt.Name, dt.OID)
	}

	// 回归保护：map 与裸 []byte 都不是 jsonb 的合法入参形态。
	if _, ok := m.TypeForValue(map[string]string{"k": "v"}); ok {
		t.Fatal("map[string]string must not be passed to a jsonb column directly")
	}
	if dt, ok := m.TypeForValue([]byte(`{}`)); ok && dt.Name == "json" {
		t.Fatal("raw []byte must not resolve as json")
	}
}
