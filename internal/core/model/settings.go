package model

// Settings are the alarm-relevant user preferences. The core reads them as
// an immutable snapshot each tick; only the UI layer mutates them.
type Settings struct {
	Volume         int
	StartSound     string
	EndSound       string
	Notify         bool
	AutoFullscreen bool
	Day            DayBounds
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		Volume:         100,
		StartSound:     "bell",
		EndSound:       "electronic",
		Notify:         true,
		AutoFullscreen: false,
		Day:            DefaultDayBounds(),
	}
}
