package gym

import (
	"context"
	"fmt"
)

// StepFunc observes every step of a rollout.
type StepFunc func(step int, action int, res StepOutcome)

// StepOutcome is the per-step view passed to a StepFunc.
type StepOutcome struct {
	Reward float64
	Done   bool
	Stats  Stats
}

// RunEpisode resets env and steps it with p until the episode ends or ctx
// is cancelled. The returned replay reproduces the episode. A step error
// that also ends the episode, such as a failed food respawn, is returned
// together with the replay.
func RunEpisode(ctx context.Context, env *SnakeEnv, p Policy, onStep StepFunc) (*Replay, error) {
	obs, err := env.Reset()
	if err != nil {
		return nil, err
	}
	info := env.Info()

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		action := p.Act(obs, info)
		res, err := env.Step(action)
		if err != nil && !res.Done {
			return nil, fmt.Errorf("gym: episode step %d: %w", i, err)
		}
		if onStep != nil {
			onStep(i, action, StepOutcome{Reward: res.Reward, Done: res.Done, Stats: env.Stats()})
		}
		if err != nil {
			return NewReplay(env), fmt.Errorf("gym: episode step %d: %w", i, err)
		}
		if res.Done {
			break
		}
		obs, info = res.Observation, res.Info
	}
	return NewReplay(env), nil
}
