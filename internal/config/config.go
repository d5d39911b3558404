package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultController is the well-known controller address the agent dials
// when no override is given by flag, config file or environment.
const DefaultController = "wss://run.pyboxs.com/kaiobuu"

// Paths describes the fixed on-disk layout the agent owns. Everything lives
// under a single base directory next to where the agent was started so the
// agent never writes into its own installation directory.
type Paths struct {
	Base        string // kaioagent-cli
	Outs        string // command output drop area
	Temp        string // scratch area
	Workspace   string // working directory for executed commands
	SessionFile string // single-value session id store
}

// AgentPaths returns the directory layout rooted in the current working
// directory.
func AgentPaths() (Paths, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Paths{}, fmt.Errorf("resolving working directory: %w", err)
	}

	return PathsAt(cwd), nil
}

// PathsAt returns the layout rooted at the given directory.
func PathsAt(root string) Paths {
	base := filepath.Join(root, "kaioagent-cli")
	return Paths{
		Base:        base,
		Outs:        filepath.Join(base, "outs"),
		Temp:        filepath.Join(base, "temp"),
		Workspace:   filepath.Join(base, "workspace"),
		SessionFile: filepath.Join(base, "config"),
	}
}

// EnsureDirs creates the directory layout if it doesn't already exist.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.Base, p.Outs, p.Temp, p.Workspace} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// NormalizeControllerAddr turns a controller address into a websocket URL.
// Plain http/https addresses are rewritten to their websocket scheme and an
// address with no scheme at all is assumed to be secure.
func NormalizeControllerAddr(server string) string {
	server = strings.TrimSuffix(server, "/")

	switch {
	case strings.HasPrefix(server, "ws://"), strings.HasPrefix(server, "wss://"):
		return server
	case strings.HasPrefix(server, "http://"), strings.HasPrefix(server, "https://"):
		// http -> ws, https -> wss
		return "ws" + server[4:]
	default:
		return "wss://" + server
	}
}

// NormalizeAPIAddr turns a controller address into the HTTP base URL of its
// client-initiated API, the counterpart of NormalizeControllerAddr.
func NormalizeAPIAddr(server string) string {
	server = strings.TrimSuffix(server, "/")

	switch {
	case strings.HasPrefix(server, "http://"), strings.HasPrefix(server, "https://"):
		return server
	case strings.HasPrefix(server, "ws://"), strings.HasPrefix(server, "wss://"):
		// ws -> http, wss -> https
		return "http" + server[2:]
	default:
		return "https://" + server
	}
}
