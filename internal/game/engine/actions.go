package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/item"
	"github.com/cory-johannsen/arena/internal/game/location"
)

// Action names accepted by ProcessAction.
const (
	ActionCombat = "combat"
	ActionSearch = "search"
)

// ErrUnknownAction is returned by ProcessAction for an unrecognized action name.
var ErrUnknownAction = errors.New("unknown action")

// experiencePerItemFound is the experience granted per item on a successful
// search.
const experiencePerItemFound = 5

// Rewards lists what an action granted.
type Rewards struct {
	Experience int      `json:"experience,omitempty"`
	Credits    int      `json:"credits,omitempty"`
	Items      []string `json:"items,omitempty"`
}

// ActionResult is the outcome of one player action. A false Success with a
// message is the expected shape for cooldown gates and empty results; errors
// are reserved for store and infrastructure failures.
type ActionResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Rewards Rewards              `json:"rewards"`
	Battle  *combat.BattleResult `json:"battle,omitempty"`
	Items   []item.Item          `json:"items,omitempty"`
	Event   *location.Event      `json:"event,omitempty"`
}

// ProcessAction dispatches a named player action. The position is only used
// by the search action.
func (e *Engine) ProcessAction(ctx context.Context, playerID, action string, pos location.Coordinate) (*ActionResult, error) {
	switch action {
	case ActionCombat:
		return e.Fight(ctx, playerID)
	case ActionSearch:
		return e.Search(ctx, playerID, pos)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Fight runs the full combat action for a player: cooldown gate, matchmaking,
// battle resolution, and persistence.
//
// Postcondition: On success the player record in the store reflects every
// battle side effect.
func (e *Engine) Fight(ctx context.Context, playerID string) (*ActionResult, error) {
	defer e.lockPlayer(playerID)()

	p, err := e.store.Load(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading player %q: %w", playerID, err)
	}

	now := e.clock()
	if !p.CanCombat(now) {
		return &ActionResult{
			Message: fmt.Sprintf("Подожди %d секунд перед следующим боем!", p.CombatCooldownRemaining(now)),
		}, nil
	}

	opp, ok := e.battles.FindOpponent(p)
	if !ok {
		return &ActionResult{Message: "Не удалось найти противника. Попробуй позже!"}, nil
	}

	levelBefore := p.Level
	result := e.battles.ExecuteBattle(p, opp, now)

	if e.metrics != nil {
		e.metrics.ObserveBattle(result.Outcome.String(), result.Rounds)
		if p.Level > levelBefore {
			e.metrics.ObserveLevelUp()
		}
	}
	e.addEvent(fmt.Sprintf("Игрок %s сражался с %s", p.Username, opp.Name))

	if err := e.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving player %q: %w", playerID, err)
	}

	return &ActionResult{
		Success: true,
		Message: result.Message,
		Rewards: Rewards{
			Experience: result.ExperienceGained,
			Credits:    result.CreditsGained,
		},
		Battle: result,
	}, nil
}

// Search runs the geo item search action: cooldown gate, nearby search,
// inventory and experience grants, an optional street event, and persistence.
func (e *Engine) Search(ctx context.Context, playerID string, pos location.Coordinate) (*ActionResult, error) {
	defer e.lockPlayer(playerID)()

	p, err := e.store.Load(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading player %q: %w", playerID, err)
	}

	now := e.clock()
	if !p.CanSearch(now) {
		return &ActionResult{
			Message: fmt.Sprintf("Подожди %d секунд перед следующим поиском!", p.SearchCooldownRemaining(now)),
		}, nil
	}

	found := e.locations.SearchItems(p, pos, now)
	event := e.locations.RandomEvent(p)

	result := &ActionResult{Items: found, Event: event}
	if len(found) == 0 {
		result.Message = "Предметы не найдены. Попробуй в другом месте!"
	} else {
		names := make([]string, 0, len(found))
		for _, it := range found {
			p.AddItem(it)
			names = append(names, it.Name)
		}
		p.ItemsFound += len(found)
		p.AddExperience(len(found) * experiencePerItemFound)

		result.Success = true
		result.Message = fmt.Sprintf("Найдено %d предметов!", len(found))
		result.Rewards = Rewards{
			Experience: len(found) * experiencePerItemFound,
			Items:      names,
		}

		if e.metrics != nil {
			e.metrics.ObserveItemsFound(len(found))
		}
		e.addEvent(fmt.Sprintf("Игрок %s нашел %d предметов", p.Username, len(found)))
	}

	if err := e.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving player %q: %w", playerID, err)
	}

	e.logger.Debug("search action resolved",
		zap.String("player_id", playerID),
		zap.Int("items", len(found)),
		zap.Bool("event", event != nil),
	)
	return result, nil
}
