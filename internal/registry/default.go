package registry

// Process-wide registries used by views unless configured otherwise.
var (
	Control     = NewControlRegistry(nil)
	Diagnostics = NewDiagnosticsRegistry(nil)
)
