package config

type WorkerKeyStruct struct {
	PersistTelemetryQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistTelemetryQueue: "persist_telemetry_queue",
}
