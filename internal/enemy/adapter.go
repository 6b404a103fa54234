package enemy

import apperrors "github.com/louisbranch/adapter.pattern/internal/platform/errors"

var _ Attacker = (*RobotAdapter)(nil)

// RobotAdapter lets a Robot be used wherever an Attacker is expected. Every
// call is forwarded unchanged to the wrapped robot.
type RobotAdapter struct {
	robot *Robot
}

// NewRobotAdapter wraps robot. The robot is fixed for the adapter's lifetime.
func NewRobotAdapter(robot *Robot) (*RobotAdapter, error) {
	if robot == nil {
		return nil, apperrors.New(apperrors.CodeRobotMissing, "robot adapter requires a robot")
	}
	return &RobotAdapter{robot: robot}, nil
}

// FireWeapon smashes with the robot's hands.
func (a *RobotAdapter) FireWeapon() {
	a.robot.SmashWithHands()
}

// DriveForward walks the robot forward.
func (a *RobotAdapter) DriveForward() {
	a.robot.WalkForward()
}

// AssignDriver has the robot react to name.
func (a *RobotAdapter) AssignDriver(name string) {
	a.robot.ReactToHuman(name)
}
