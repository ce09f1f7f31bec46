package domain

// Screen identifies one of the views of the mobile client.
type Screen string

const (
	ScreenSplash       Screen = "splash" // Entry point, never re-entered via back
	ScreenOnboarding   Screen = "onboarding"
	ScreenLogin        Screen = "login"
	ScreenHome         Screen = "home" // Citizen dashboard
	ScreenReport       Screen = "report"
	ScreenConfirmation Screen = "confirmation"
	ScreenTrack        Screen = "track"
	ScreenAdmin        Screen = "admin"
	ScreenSuperAdmin   Screen = "super-admin"
	ScreenFeedback     Screen = "feedback"
	ScreenProfile      Screen = "profile"
)

var screens = []Screen{
	ScreenSplash,
	ScreenOnboarding,
	ScreenLogin,
	ScreenHome,
	ScreenReport,
	ScreenConfirmation,
	ScreenTrack,
	ScreenAdmin,
	ScreenSuperAdmin,
	ScreenFeedback,
	ScreenProfile,
}

// Screens returns every known screen in declaration order.
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

// Valid reports whether s belongs to the closed set of screens.
func (s Screen) Valid() bool {
	for _, known := range screens {
		if s == known {
			return true
		}
	}
	return false
}

// ParseScreen converts a raw identifier into a Screen.
func ParseScreen(raw string) (Screen, bool) {
	s := Screen(raw)
	return s, s.Valid()
}

func (s Screen) String() string {
	return string(s)
}
