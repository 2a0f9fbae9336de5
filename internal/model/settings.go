package model

// NotificationPrefs are the per-user notification switches.
type NotificationPrefs struct {
	Email       bool `json:"email"`
	Push        bool `json:"push"`
	StockAlerts bool `json:"stock_alerts"`
	Updates     bool `json:"updates"`
	Marketing   bool `json:"marketing"`
}

// DefaultNotificationPrefs enables email, push and stock alerts.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{Email: true, Push: true, StockAlerts: true}
}

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Appearance holds the per-user display settings.
type Appearance struct {
	Theme string `json:"theme"`
}
