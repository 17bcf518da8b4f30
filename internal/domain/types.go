package domain

import "time"

type SessionID string

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Color names a display color. The display adapter decides how to render it.
type Color string

const (
	ColorDefault Color = ""
	ColorWhite   Color = "white"
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorOrange  Color = "orange"
	ColorGrey    Color = "grey"
)

type Timestamp = time.Time
