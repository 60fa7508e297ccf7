package pipeline

import (
	"fmt"
	"unicode/utf8"
)

// maxRawLen - StageError에 담는 원문 최대 길이 (byte)
const maxRawLen = 500

// StageError - 특정 단계에서 분석이 중단된 경우. 부분 리포트는 반환하지 않는다.
type StageError struct {
	Stage Stage
	Raw   string
	Err   error
}

func newStageError(stage Stage, raw string, err error) *StageError {
	return &StageError{Stage: stage, Raw: truncate(raw, maxRawLen), Err: err}
}

func (e *StageError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("stage %s failed: %v (raw=%q)", e.Stage, e.Err, e.Raw)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// UTF-8 문자 경계를 깨지 않도록 자름
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
