package civicnav

// Version is the release of the civicnav module, printed by the CLI and the HTTP /info endpoint.
var Version = "0.3.0"
