package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/serenity"
)

// KeyCode converts an ebiten key to its DOM KeyboardEvent.code name.
// Ebiten already uses DOM names for most keys ("ArrowUp", "ShiftLeft",
// "Digit1"); single letters get the "Key" prefix and bare digits the
// "Digit" prefix.
func KeyCode(k ebiten.Key) serenity.Key {
	return keyName(k.String())
}

func keyName(name string) serenity.Key {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return serenity.Key("Key" + name)
		case c >= '0' && c <= '9':
			return serenity.Key("Digit" + name)
		}
	}
	return serenity.Key(name)
}
