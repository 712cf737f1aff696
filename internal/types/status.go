package types

// ControllerState is the state of the button controller
type ControllerState string

const (
	// Possible controller states
	StateIdle      ControllerState = "Idle"
	StatePressed   ControllerState = "Pressed"
	StateTriggered ControllerState = "Triggered"
)

// EffectState is the state of a running animation
type EffectState string

const (
	EffectRunning EffectState = "Running"
	EffectDone    EffectState = "Done"
)
