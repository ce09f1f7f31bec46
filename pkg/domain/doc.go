/*
Package domain contains the core domain models and transition logic for the civicnav
navigation state machine.

It defines the closed sets of screens, roles and languages, the AppState record and the
pure transition functions that move a session between screens. This package is kept pure
and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Screen: One of the fixed screen identifiers of the mobile client.
  - AppState: The snapshot of a navigation session (screen, role, locale, issue, history).
  - Transitions: NavigateTo, GoBack, Login, SetUserRole and SetLanguage. All are total
    functions; invalid input is absorbed instead of rejected.
  - StateDiff: A field-level delta between two states, used for streaming updates.
*/
package domain
