package enemy

import "github.com/louisbranch/adapter.pattern/internal/core/dice"

var _ Attacker = (*Tank)(nil)

// Tank is an enemy that implements Attacker natively.
type Tank struct {
	voice voice
	rng   dice.Source
}

// NewTank builds a tank reporting through deps.
func NewTank(deps Deps) *Tank {
	deps = deps.withDefaults()
	return &Tank{
		voice: voice{out: deps.Out, printer: deps.Printer},
		rng:   deps.Rand,
	}
}

// FireWeapon reports a fresh damage roll.
func (t *Tank) FireWeapon() {
	t.voice.say(MsgTankFireWeapon, dice.UpTo(t.rng, MaxDamage))
}

// DriveForward reports a fresh movement roll.
func (t *Tank) DriveForward() {
	t.voice.say(MsgTankDriveForward, dice.UpTo(t.rng, MaxMovement))
}

// AssignDriver reports name as the tank's driver.
func (t *Tank) AssignDriver(name string) {
	t.voice.say(MsgTankAssignDriver, name)
}
