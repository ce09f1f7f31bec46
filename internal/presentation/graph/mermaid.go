package graph

import (
	"fmt"
	"strings"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// Pseudo nodes for edges whose destination is chosen at runtime.
const (
	anyScreenID = "any_screen"
	historyID   = "history"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedScreens []domain.Screen
	CurrentScreen  domain.Screen
}

// OverlayFor builds the overlay of a session state.
func OverlayFor(s domain.AppState) *GraphOverlay {
	return &GraphOverlay{
		VisitedScreens: append([]domain.Screen{}, s.NavigationHistory...),
		CurrentScreen:  s.CurrentScreen,
	}
}

// GenerateMermaid produces a Mermaid flowchart of the screen table.
// It applies semantic styling:
// - Splash: ((Circle))
// - Issue-bound screens: [/Parallelogram/]
// - Default: [Rectangle]
// Payload-chosen destinations (navigate) and history pops (back) point at
// pseudo nodes drawn with dotted arrows.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(routes []resolver.Route, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	inbound := make(map[domain.Screen]resolver.ParamKind)
	for _, r := range routes {
		inbound[r.Screen] = r.Inbound
	}
	for _, screen := range domain.Screens() {
		kind, ok := inbound[screen]
		if !ok {
			continue
		}
		opener, closer := "[", "]"
		switch {
		case screen == domain.ScreenSplash:
			opener, closer = "((", "))"
		case kind == resolver.ParamIssueID:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(string(screen)), opener, screen, closer))
	}

	var usesAny, usesHistory bool
	for _, r := range routes {
		from := sanitizeMermaidID(string(r.Screen))
		label := string(r.Event)
		if r.ForwardIssue {
			label += " +issue"
		}

		switch {
		case r.Call == resolver.CallLogin:
			for _, role := range []domain.Role{domain.RoleCitizen, domain.RoleAdmin, domain.RoleSuperAdmin} {
				to := sanitizeMermaidID(string(role.EntryScreen()))
				sb.WriteString(fmt.Sprintf("    %s -- \"%s (%s)\" --> %s\n", from, label, role, to))
			}
		case r.Call == resolver.CallSetLanguage:
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, label, from))
		case r.Call == resolver.CallGoBack:
			usesHistory = true
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", from, label, historyID))
		case r.Target == "":
			usesAny = true
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", from, label, anyScreenID))
		default:
			to := sanitizeMermaidID(string(r.Target))
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, label, to))
		}
	}

	if usesAny {
		sb.WriteString(fmt.Sprintf("    %s{{\"any screen\"}}\n", anyScreenID))
	}
	if usesHistory {
		sb.WriteString(fmt.Sprintf("    %s{{\"previous screen\"}}\n", historyID))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, screen := range overlay.VisitedScreens {
			safeID := sanitizeMermaidID(string(screen))
			if !visitedSet[safeID] && safeID != "" && screen != overlay.CurrentScreen {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentScreen != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentScreen))))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
