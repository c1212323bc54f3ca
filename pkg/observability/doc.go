/*
Package observability provides Prometheus metrics and structured log hooks for machines.

Metrics.Hooks returns domain.LifecycleHooks that count steps and halts per machine;
Chain combines them with other hooks, such as LogHooks.
*/
package observability
