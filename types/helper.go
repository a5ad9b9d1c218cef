package types

type tracingKey string

// TracingID is the context key carrying a request tracing id for log capture.
const TracingID tracingKey = "tracing_id"
