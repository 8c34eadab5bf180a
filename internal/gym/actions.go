package gym

import (
	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/snake"
)

// ActionIndex maps a platform direction action to the environment action.
func ActionIndex(a core.Action) (int, bool) {
	switch a {
	case core.ActionUp:
		return int(snake.DirUp), true
	case core.ActionRight:
		return int(snake.DirRight), true
	case core.ActionDown:
		return int(snake.DirDown), true
	case core.ActionLeft:
		return int(snake.DirLeft), true
	}
	return 0, false
}
