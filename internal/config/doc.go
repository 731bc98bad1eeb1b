// Package config loads, saves and validates the YAML settings of the
// signal-monitor binary: broker connection, sampling interval and the list
// of monitored inputs with their temporal conditioning.
package config
