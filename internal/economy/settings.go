package economy

// DefaultSessionSeconds is the default length of a timed game session.
const DefaultSessionSeconds = 60

// Settings are user preferences.
type Settings struct {
	DefaultTime int `json:"defaultTime"`
}

// DefaultSettings returns the settings of a new profile.
func DefaultSettings() Settings {
	return Settings{DefaultTime: DefaultSessionSeconds}
}
