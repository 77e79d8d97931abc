// Package infra groups the adapters around the simulation core: CSV
// datasets, metrics sinks, the MQTT publisher, the SQLite KPI store,
// zerolog logging and Sentry monitoring. Core packages never import infra.
package infra
