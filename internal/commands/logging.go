package commands

import (
	"strings"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const (
	commandModuleRoot = "storefront.commands"
	messageTypeRoot   = "storefront."
)

// CommandLogger returns the logger for one command module ("catalog",
// "markdown"), named storefront.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := normalizeModule(module)
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// ModuleOf extracts the module from a storefront message type:
// "storefront.catalog.create_product" is "catalog". Types outside the
// storefront namespace belong to "core".
func ModuleOf(messageType string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(messageType), messageTypeRoot)
	if !ok {
		return "core"
	}
	module, _, _ := strings.Cut(rest, ".")
	return normalizeModule(module)
}

func normalizeModule(module string) string {
	name := strings.ToLower(strings.TrimSpace(module))
	if name == "" {
		return "core"
	}
	return name
}
