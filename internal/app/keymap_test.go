package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/snipstorm/internal/input/key"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name    string
		ev      *tcell.EventKey
		wantKey key.Key
		wantCh  rune
		wantMod key.Modifier
	}{
		{
			name:    "letter",
			ev:      tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			wantKey: key.KeyRune,
			wantCh:  'a',
		},
		{
			name:    "space rune normalizes to space key",
			ev:      tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone),
			wantKey: key.KeySpace,
		},
		{
			name:    "enter",
			ev:      tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			wantKey: key.KeyEnter,
		},
		{
			name:    "backspace2",
			ev:      tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
			wantKey: key.KeyBackspace,
		},
		{
			name:    "escape",
			ev:      tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone),
			wantKey: key.KeyEscape,
		},
		{
			name:    "arrow with shift",
			ev:      tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift),
			wantKey: key.KeyLeft,
			wantMod: key.ModShift,
		},
		{
			name:    "ctrl letter",
			ev:      tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl),
			wantKey: key.KeyRune,
			wantCh:  'q',
			wantMod: key.ModCtrl,
		},
		{
			name:    "alt rune",
			ev:      tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt),
			wantKey: key.KeyRune,
			wantCh:  'x',
			wantMod: key.ModAlt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateKey(tt.ev)
			if got.Key != tt.wantKey {
				t.Errorf("Key = %v, want %v", got.Key, tt.wantKey)
			}
			if got.Rune != tt.wantCh {
				t.Errorf("Rune = %q, want %q", got.Rune, tt.wantCh)
			}
			if got.Modifiers != tt.wantMod {
				t.Errorf("Modifiers = %v, want %v", got.Modifiers, tt.wantMod)
			}
		})
	}
}
