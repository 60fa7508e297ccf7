// Package invoker selects the completion backend used for an analysis.
//
// 처리 흐름:
//  1. New: live 백엔드에 보정 프롬프트를 한 번 전송 (timeout 적용)
//  2. 성공하면 live, 실패하면 Stand-In Responder를 invoker 수명 동안 고정 사용
//  3. HealthCheck: 재검사만 수행하며 고정된 선택은 바꾸지 않음
//
// 호출 도중 live 백엔드가 실패해도 stand-in으로 전환하지 않는다.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kube-rca/incident-commander/internal/metrics"
	"github.com/kube-rca/incident-commander/internal/standin"
)

// ErrBackendUnreachable - live 백엔드 보정 호출 실패
var ErrBackendUnreachable = errors.New("backend unreachable")

// Backend - 프롬프트를 받아 원문 응답을 반환하는 completion 백엔드
type Backend interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Kind - 선택된 백엔드 종류
type Kind string

const (
	KindLive    Kind = "live"
	KindStandIn Kind = "stand-in"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	standInModel    = "stand-in"
	standInEndpoint = "local://stand-in"
)

// Options - 외부에서 주입하는 live 백엔드 설정
type Options struct {
	Model    string
	Endpoint string
	// Temperature - live 클라이언트에 설정된 값. 호출에는 관여하지 않고 HealthCheck에 보고만 한다.
	Temperature float64
	Timeout     time.Duration
}

// Health - HealthCheck 결과
type Health struct {
	Status   string `json:"status"`
	Backend  Kind   `json:"backend"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
	// Temperature - live 백엔드 샘플링 temperature (stand-in은 결정적이라 nil)
	Temperature          *float64 `json:"temperature,omitempty"`
	SampleResponseLength int      `json:"sample_response_length"`
	Note                 string   `json:"note,omitempty"`
	Error                string   `json:"error,omitempty"`
}

// Invoker - 생성 시점에 선택한 백엔드로 프롬프트를 전달
//
// 생성 이후 상태가 바뀌지 않으며, 동시 호출 안전성은 선택된 백엔드 클라이언트를 따른다.
type Invoker struct {
	live     Backend
	standIn  Backend
	active   Backend
	kind     Kind
	opts     Options
	probeErr error
}

// Invoker 객체 생성
//
// live가 nil이면 보정 호출 없이 stand-in을 선택한다.
// 보정 호출은 최대 opts.Timeout 동안 블록될 수 있다.
func New(ctx context.Context, live Backend, standIn Backend, opts Options) *Invoker {
	if standIn == nil {
		standIn = standin.New()
	}

	inv := &Invoker{
		live:    live,
		standIn: standIn,
		opts:    opts,
	}

	if _, err := inv.probe(ctx); err != nil {
		inv.active = standIn
		inv.kind = KindStandIn
		inv.probeErr = err
		log.Printf("Live backend unavailable, using stand-in responder (model=%s, endpoint=%s): %v", opts.Model, opts.Endpoint, err)
	} else {
		inv.active = live
		inv.kind = KindLive
		log.Printf("Using live backend (model=%s, endpoint=%s)", opts.Model, opts.Endpoint)
	}

	metrics.SetActiveBackend(string(inv.kind))
	return inv
}

// Invoke - 선택된 백엔드로 프롬프트 전송 (호출마다 timeout 적용)
func (i *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	return i.call(ctx, i.active, prompt)
}

// Kind - 생성 시점에 선택된 백엔드 종류
func (i *Invoker) Kind() Kind {
	return i.kind
}

// ProbeError - 생성 시점 보정 호출 실패 원인 (live 선택 시 nil)
func (i *Invoker) ProbeError() error {
	return i.probeErr
}

// Options - 주입된 백엔드 설정
func (i *Invoker) Options() Options {
	return i.opts
}

// HealthCheck - live 백엔드를 다시 검사해서 현재 사용할 수 있는 백엔드를 보고
func (i *Invoker) HealthCheck(ctx context.Context) Health {
	out, err := i.probe(ctx)
	if err == nil {
		return Health{
			Status:               StatusHealthy,
			Backend:              KindLive,
			Model:                i.opts.Model,
			Endpoint:             i.opts.Endpoint,
			Temperature:          i.temperature(),
			SampleResponseLength: len(out),
		}
	}

	standInOut, standInErr := i.call(ctx, i.standIn, standin.CalibrationPrompt)
	if standInErr == nil {
		return Health{
			Status:               StatusHealthy,
			Backend:              KindStandIn,
			Model:                standInModel,
			Endpoint:             standInEndpoint,
			SampleResponseLength: len(standInOut),
			Note:                 "live backend unreachable, using stand-in responder",
			Error:                err.Error(),
		}
	}

	return Health{
		Status:   StatusUnhealthy,
		Backend:  i.kind,
		Model:    i.opts.Model,
		Endpoint: i.opts.Endpoint,
		Error:    fmt.Sprintf("%v; stand-in: %v", err, standInErr),
	}
}

func (i *Invoker) temperature() *float64 {
	t := i.opts.Temperature
	return &t
}

func (i *Invoker) probe(ctx context.Context) (string, error) {
	if i.live == nil {
		return "", fmt.Errorf("%w: live backend not configured", ErrBackendUnreachable)
	}
	out, err := i.call(ctx, i.live, standin.CalibrationPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackendUnreachable, err)
	}
	return out, nil
}

func (i *Invoker) call(ctx context.Context, backend Backend, prompt string) (string, error) {
	if i.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.opts.Timeout)
		defer cancel()
	}
	return backend.Invoke(ctx, prompt)
}
