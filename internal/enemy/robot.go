package enemy

import "github.com/louisbranch/adapter.pattern/internal/core/dice"

// Robot is an enemy with its own way of attacking, moving and reacting to
// people. It does not implement Attacker; wrap it in a RobotAdapter for that.
type Robot struct {
	voice voice
	rng   dice.Source
}

// NewRobot builds a robot reporting through deps.
func NewRobot(deps Deps) *Robot {
	deps = deps.withDefaults()
	return &Robot{
		voice: voice{out: deps.Out, printer: deps.Printer},
		rng:   deps.Rand,
	}
}

// SmashWithHands reports a fresh damage roll dealt by hand.
func (r *Robot) SmashWithHands() {
	r.voice.say(MsgRobotSmashWithHands, dice.UpTo(r.rng, MaxDamage))
}

// WalkForward reports a fresh movement roll.
func (r *Robot) WalkForward() {
	r.voice.say(MsgRobotWalkForward, dice.UpTo(r.rng, MaxMovement))
}

// ReactToHuman reports the robot stomping on humanName.
func (r *Robot) ReactToHuman(humanName string) {
	r.voice.say(MsgRobotReactToHuman, humanName)
}
