package combat_test

import (
	"testing"

	"github.com/cory-johannsen/arena/internal/game/combat"
)

func makeCombatants() (*combat.Combatant, *combat.Combatant) {
	player := &combat.Combatant{Attack: 10, Defense: 5, Speed: 8, CriticalDamage: 15, Health: 100}
	opp := &combat.Combatant{Attack: 12, Defense: 6, Speed: 7, CriticalDamage: 15, Health: 80}
	return player, opp
}

func TestSimulateRound_PlayerStrikesFirstOnHigherInitiative(t *testing.T) {
	player, opp := makeCombatants()

	// Midpoint rolls: initiatives 8 vs 7, no crits, zero jitter.
	round := combat.SimulateRound(player, opp, 1, midpointSrc{})

	if round.Round != 1 {
		t.Fatalf("round number = %d, want 1", round.Round)
	}
	if round.OpponentDamage != 7 {
		t.Fatalf("opponent took %d, want 7", round.OpponentDamage)
	}
	if round.PlayerDamage != 10 {
		t.Fatalf("player took %d, want 10", round.PlayerDamage)
	}
	if round.PlayerHealth != 90 || round.OpponentHealth != 73 {
		t.Fatalf("health = %d/%d, want 90/73", round.PlayerHealth, round.OpponentHealth)
	}
	if len(round.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(round.Events))
	}
	if round.Events[0] != "Ты наносишь 7 урона!" {
		t.Fatalf("unexpected first event %q", round.Events[0])
	}
}

func TestSimulateRound_TieFavorsPlayer(t *testing.T) {
	player, opp := makeCombatants()
	player.Speed = 7 // equal speeds, midpoint jitter keeps them tied

	round := combat.SimulateRound(player, opp, 1, midpointSrc{})

	if round.Events[0] != "Ты наносишь 7 урона!" {
		t.Fatalf("tie should let the player act first, got %q", round.Events[0])
	}
}

func TestSimulateRound_EarlyExitOnKill(t *testing.T) {
	player, opp := makeCombatants()
	opp.Health = 5

	round := combat.SimulateRound(player, opp, 3, midpointSrc{})

	if round.OpponentHealth != 0 {
		t.Fatalf("opponent health = %d, want 0", round.OpponentHealth)
	}
	// The opponent never acted: no counterattack, player untouched.
	if round.PlayerDamage != 0 {
		t.Fatalf("player took %d, want 0", round.PlayerDamage)
	}
	if round.PlayerHealth != 100 {
		t.Fatalf("player health = %d, want 100", round.PlayerHealth)
	}
	if len(round.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(round.Events))
	}
}

func TestSimulateRound_OpponentFirstWhenFaster(t *testing.T) {
	player, opp := makeCombatants()
	opp.Speed = 20

	round := combat.SimulateRound(player, opp, 1, midpointSrc{})

	if round.Events[0] != "Противник наносит 10 урона!" {
		t.Fatalf("faster opponent should act first, got %q", round.Events[0])
	}
}

func TestSimulateRound_EarlyExitOnPlayerDeath(t *testing.T) {
	player, opp := makeCombatants()
	player.Health = 5
	opp.Speed = 20

	round := combat.SimulateRound(player, opp, 1, midpointSrc{})

	if round.PlayerHealth != 0 {
		t.Fatalf("player health = %d, want 0", round.PlayerHealth)
	}
	if round.OpponentDamage != 0 {
		t.Fatalf("opponent took %d, want 0", round.OpponentDamage)
	}
	if round.OpponentHealth != 80 {
		t.Fatalf("opponent health = %d, want 80", round.OpponentHealth)
	}
}
