// Package infra contains technical adapters such as the MQTT client,
// metrics sinks and the plot renderer. These packages should depend only
// on the interfaces defined in the core packages.
package infra
