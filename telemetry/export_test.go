package telemetry

// SetupWithMetricExporter exposes setup with a replaceable metric exporter.
var SetupWithMetricExporter = setup
