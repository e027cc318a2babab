package models

import "time"

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type ProfileData struct {
	FullName       string `json:"fullName"`
	Username       string `json:"username,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"` // data-URI
}

// ProgressData: Level всегда производен от Points и пересчитывается при
// каждом изменении очков, отдельно он не живёт
type ProgressData struct {
	Points                 int    `json:"points"`
	Level                  int    `json:"level"`
	Streak                 int    `json:"streak"`
	LastTaskCompletionDate string `json:"lastTaskCompletionDate,omitempty"`
}

type Theme string

const ThemeLight Theme = "light"
const ThemeDark Theme = "dark"
const ThemeAuto Theme = "auto"

type Settings struct {
	DarkMode          bool  `json:"darkMode"` // устаревшее поле, Theme приоритетнее
	Theme             Theme `json:"theme,omitempty"`
	EnableReminders   bool  `json:"enableReminders"`
	NotificationTimes []int `json:"notificationTimes,omitempty"` // минуты до дедлайна
}

// DarkModeEnabled: при заданной теме она решает, иначе старый флаг.
// Auto ориентируется на местное время суток.
func (s Settings) DarkModeEnabled(now time.Time) bool {
	switch s.Theme {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	case ThemeAuto:
		hour := now.Hour()
		return hour < 7 || hour >= 19
	}
	return s.DarkMode
}

func DefaultProgress() ProgressData {
	return ProgressData{
		Points: 0,
		Level:  1,
		Streak: 0,
	}
}

func DefaultSettings() Settings {
	return Settings{
		DarkMode:        false,
		EnableReminders: true,
	}
}

// DefaultCategories — фиксированный стартовый набор; каждый вызов отдаёт
// свежий слайс, чтобы вызывающий мог его менять
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#FF5A5A"},
		{ID: "study", Name: "Study", Color: "#FFBD59"},
		{ID: "fitness", Name: "Fitness", Color: "#5AFF5A"},
		{ID: "personal", Name: "Personal", Color: "#9B87F5"},
		{ID: "finance", Name: "Finance", Color: "#FFDF5A"},
		{ID: "health", Name: "Health", Color: "#59B0FF"},
		{ID: "shopping", Name: "Shopping", Color: "#FF5AE8"},
		{ID: "other", Name: "Other", Color: "#7D7D7D"},
	}
}
