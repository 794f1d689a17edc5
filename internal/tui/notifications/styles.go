package notifications

import (
	"github.com/thenoetrevino/hireboard/internal/notify"
	"github.com/thenoetrevino/hireboard/internal/tui/theme"
)

type style struct {
	icon  string
	title string
	color string
}

func styleFor(level notify.Level) style {
	switch level {
	case notify.LevelSuccess:
		return style{icon: "✓", title: "Success", color: theme.SuccessFg}
	case notify.LevelWarning:
		return style{icon: "⚠", title: "Warning", color: theme.WarningFg}
	case notify.LevelError:
		return style{icon: "✕", title: "Error", color: theme.ErrorFg}
	default:
		return style{icon: "🔔", title: "Info", color: theme.InfoFg}
	}
}
