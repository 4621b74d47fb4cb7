// Package reconcile mirrors the configuration of one API service onto another.
//
// A run is one-way and additive: it reads the source, compares it with the destination
// and creates what is missing. Nothing on the destination is updated in place or removed,
// except the service settings and proxy, which are overwritten, and the mapping rules,
// which are wiped first when force is requested.
//
// # Components
//
// 1. Differ: Equivalent, Missing and MissingConsuming compare records by natural keys
// (system_name for metrics, methods and plans; period for limits; pattern, http_method
// and delta for mapping rules), optionally refined by predicates.
//
// 2. Mapper: BuildMapping pairs source ids with destination ids so that references
// (metric_id on limits and mapping rules) can be translated before a create.
//
// 3. Engine: runs the categories in dependency order against two remote.Store values
// and accumulates a Report. The destination metric listing is cached per run and
// invalidated after every metric or method create.
//
// # Usage Example
//
//	engine := reconcile.New(source, target, 2555417777820, 2555417780000, log, reconcile.Options{})
//	report, err := engine.Run(ctx)
//	if err != nil {
//	    log.Error("Run failed", zap.Error(err), zap.Int("writes", report.Summary.Writes()))
//	}
//
// Running the same engine configuration twice in a row issues no creates the second time.
package reconcile
