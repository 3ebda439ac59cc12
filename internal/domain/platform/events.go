package platform

import "github.com/lutrii-inc/lutrii/internal/domain/shared/events"

const (
	EventPlatformInitialized   = "platform.initialized"
	EventPlatformConfigUpdated = "platform.config_updated"
	EventEmergencyPause        = "platform.emergency_pause"
	EventEmergencyUnpause      = "platform.emergency_unpause"
)

type PlatformInitializedEvent struct {
	events.BaseEvent
	Authority        string
	FeeBasisPoints   uint16
	DailyVolumeLimit uint64
}

func NewPlatformInitializedEvent(address, authority string, feeBasisPoints uint16, dailyVolumeLimit uint64) PlatformInitializedEvent {
	return PlatformInitializedEvent{
		BaseEvent:        events.NewBaseEvent(EventPlatformInitialized, address),
		Authority:        authority,
		FeeBasisPoints:   feeBasisPoints,
		DailyVolumeLimit: dailyVolumeLimit,
	}
}

type PlatformConfigUpdatedEvent struct {
	events.BaseEvent
	FeeBasisPoints   uint16
	MinFee           uint64
	MaxFee           uint64
	DailyVolumeLimit uint64
}

func NewPlatformConfigUpdatedEvent(address string, feeBasisPoints uint16, minFee, maxFee, dailyVolumeLimit uint64) PlatformConfigUpdatedEvent {
	return PlatformConfigUpdatedEvent{
		BaseEvent:        events.NewBaseEvent(EventPlatformConfigUpdated, address),
		FeeBasisPoints:   feeBasisPoints,
		MinFee:           minFee,
		MaxFee:           maxFee,
		DailyVolumeLimit: dailyVolumeLimit,
	}
}

type EmergencyPauseActivatedEvent struct {
	events.BaseEvent
}

func NewEmergencyPauseActivatedEvent(address string) EmergencyPauseActivatedEvent {
	return EmergencyPauseActivatedEvent{
		BaseEvent: events.NewBaseEvent(EventEmergencyPause, address),
	}
}

type EmergencyPauseLiftedEvent struct {
	events.BaseEvent
}

func NewEmergencyPauseLiftedEvent(address string) EmergencyPauseLiftedEvent {
	return EmergencyPauseLiftedEvent{
		BaseEvent: events.NewBaseEvent(EventEmergencyUnpause, address),
	}
}
