/*
Package observability provides lifecycle hooks that log and count navigation transitions.

Metrics registers Prometheus collectors on its own registry and exposes them as
domain.LifecycleHooks. LoggingHooks writes one structured record per transition.
Both can be chained with domain.MergeHooks.
*/
package observability
