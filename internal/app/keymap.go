package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/snipstorm/internal/input/key"
)

// translateKey converts a tcell key event into the internal key event
// representation. Unrecognized keys map to an event with key.KeyNone.
func translateKey(ev *tcell.EventKey) key.Event {
	mods := translateModifiers(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods).Normalize()
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case tcell.KeyEsc:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods)
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods)
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods)
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods)
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods)
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods)
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods)
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods)
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods)
	}

	// Control characters arrive as dedicated tcell key codes. The aliased
	// codes (Tab, Enter, Backspace) are handled above.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods|key.ModCtrl)
	}

	return key.NewSpecialEvent(key.KeyNone, mods)
}

func translateModifiers(mods tcell.ModMask) key.Modifier {
	var out key.Modifier
	if mods&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	return out
}
