package domain

// Role is the authorization role of the logged-in user.
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ParseRole converts a raw role name into a Role.
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	return r, r.Valid()
}

// EntryScreen is the screen a user lands on right after login.
func (r Role) EntryScreen() Screen {
	switch r {
	case RoleSuperAdmin:
		return ScreenSuperAdmin
	case RoleAdmin:
		return ScreenAdmin
	default:
		return ScreenHome
	}
}

func (r Role) String() string {
	return string(r)
}

// Language is the active locale of the client.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageMarathi Language = "mr"
)

// Languages returns the supported locales, default first.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageHindi, LanguageMarathi}
}

// Valid reports whether l is a supported locale.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageMarathi:
		return true
	}
	return false
}

// ParseLanguage converts a raw locale code into a Language.
func ParseLanguage(raw string) (Language, bool) {
	l := Language(raw)
	return l, l.Valid()
}

func (l Language) String() string {
	return string(l)
}
