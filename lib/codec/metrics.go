package codec

import (
	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Instrumentation
// --------------------------------------------------------------------------

// Serialization throughput and failure counters. Exposed through the
// default VictoriaMetrics registry; embedding applications decide where to
// publish them (metrics.WritePrometheus on their own endpoint).
var (
	serializeFullTotal = metrics.NewCounter(`fieldstate_serialize_total{mode="full"}`)
	serializeDiffTotal = metrics.NewCounter(`fieldstate_serialize_total{mode="diff"}`)
	deserializeTotal   = metrics.NewCounter(`fieldstate_deserialize_total`)

	serializeErrors   = metrics.NewCounter(`fieldstate_codec_errors_total{op="serialize"}`)
	deserializeErrors = metrics.NewCounter(`fieldstate_codec_errors_total{op="deserialize"}`)

	serializedBytes   = metrics.NewHistogram(`fieldstate_serialized_bytes`)
	deserializedBytes = metrics.NewHistogram(`fieldstate_deserialized_bytes`)
)
