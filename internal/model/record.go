// 단계별 응답에서 복원한 구조화 레코드 정의
//
// Record는 스키마를 모르는 상태의 object이고, 단계별 typed record는
// 고정된 필드 집합 + Extra(알 수 없는 필드를 타입 없이 보존)로 구성된다.

package model

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Record - JSON object 형태의 구조화 레코드 (최상위가 배열/스칼라인 경우는 없음)
type Record map[string]any

// DecodeRecord - Record를 typed record(dst)로 변환
func DecodeRecord(rec Record, dst any) error {
	if rec == nil {
		rec = Record{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// fieldSet - json key -> 디코딩 대상 포인터
type fieldSet map[string]any

// decodeFields - 알려진 필드는 대상 포인터로, 나머지(또는 타입이 맞지 않는 필드)는 extra로 분리
func decodeFields(data []byte, fields fieldSet) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var extra map[string]any
	for key, value := range raw {
		if dst, ok := fields[key]; ok && decodeInto(value, dst) {
			continue
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = v
	}
	return extra, nil
}

// 디코딩 실패 시 dst를 건드리지 않도록 임시 값에 먼저 디코딩
func decodeInto(value json.RawMessage, dst any) bool {
	target := reflect.ValueOf(dst).Elem()
	tmp := reflect.New(target.Type())
	if err := json.Unmarshal(value, tmp.Interface()); err != nil {
		return false
	}
	target.Set(tmp.Elem())
	return true
}

// encodeWithExtra - typed 필드를 직렬화한 뒤 extra 필드를 합침 (extra가 우선)
func encodeWithExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}
