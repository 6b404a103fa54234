package enemy

// Catalog keys for enemy reports, see locales/*/enemy.yaml.
const (
	MsgTankFireWeapon      = "enemy.tank.fire_weapon"
	MsgTankDriveForward    = "enemy.tank.drive_forward"
	MsgTankAssignDriver    = "enemy.tank.assign_driver"
	MsgRobotSmashWithHands = "enemy.robot.smash_with_hands"
	MsgRobotWalkForward    = "enemy.robot.walk_forward"
	MsgRobotReactToHuman   = "enemy.robot.react_to_human"
)
