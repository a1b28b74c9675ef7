package system

import "time"

// Phase defines execution ordering within a single pulse.
type Phase int

const (
	PhaseInput   Phase = iota // 0: drain host events queued since last pulse
	PhaseUpdate               // 1: pulse simulation (heal detection, countdown, timer sweep)
	PhaseOutput               // 2: hand countdowns to the renderer
	PhaseCleanup              // 3: drop index bindings no longer seen
)

// System is the interface every pulse system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
