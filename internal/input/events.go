package input

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// ParseButton maps "left", "right" and "middle" to buttons.
func ParseButton(s string) (Button, bool) {
	switch s {
	case "left", "primary":
		return ButtonPrimary, true
	case "right", "secondary":
		return ButtonSecondary, true
	case "middle":
		return ButtonMiddle, true
	}
	return 0, false
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether every modifier in m is held.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// Key is a host-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyN
	KeyR
	KeyC
	Key0
	KeyQ
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPlus
	KeyMinus
)
