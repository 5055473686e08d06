package dependencyinjection

import (
	"github.com/jackbister/wtrack/pkg/wtrack"
	"github.com/jackbister/wtrack/plugins/observation"
)

var usedPlugins = []wtrack.Plugin{
	observation.Plugin,
}
