/*
Package ports defines the driven ports (interfaces) of the machine services.

These interfaces decouple sessions and runs from external implementations,
allowing traces to be kept in memory, on disk or in Redis.

# Key Interfaces

  - TraceStore: Records the snapshots produced while a machine runs.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
