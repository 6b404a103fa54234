// Package enemy models the enemies a player faces: a tank that attacks the
// way clients expect, a robot that does not, and an adapter that lets the
// robot stand in for the tank.
package enemy

import (
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/adapter.pattern/internal/core/dice"
	"github.com/louisbranch/adapter.pattern/internal/platform/i18n/catalog"
	"golang.org/x/text/message"
)

const (
	// MaxDamage is the highest damage a single attack reports.
	MaxDamage = 10
	// MaxMovement is the most spaces a single move covers.
	MaxMovement = 5
)

// Attacker is the contract client code is written against.
type Attacker interface {
	// FireWeapon attacks and reports damage in [0, MaxDamage].
	FireWeapon()
	// DriveForward moves and reports spaces in [0, MaxMovement].
	DriveForward()
	// AssignDriver binds an operator and reports the name verbatim.
	AssignDriver(name string)
}

// Deps wires an enemy to where it reports, how it words reports and what it
// rolls with. Zero fields fall back to io.Discard, the base-locale printer and
// a time-seeded source.
type Deps struct {
	Out     io.Writer
	Printer *message.Printer
	Rand    dice.Source
}

func (d Deps) withDefaults() Deps {
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Printer == nil {
		d.Printer = catalog.NewPrinter(catalog.BaseLocale)
	}
	if d.Rand == nil {
		d.Rand = dice.NewSource(time.Now().UnixNano())
	}
	return d
}

// voice writes one localized line per report. Write failures are dropped:
// reports are the only observable effect and have no error path.
type voice struct {
	out     io.Writer
	printer *message.Printer
}

func (v voice) say(key string, args ...any) {
	fmt.Fprintln(v.out, v.printer.Sprintf(key, args...))
}
