// Package redissink mirrors telemetry events into a Redis hash.
//
// Events are aggregated in memory and written in a single pipelined round
// trip on every flush, so the synchronous Sink methods never touch the
// network. Counters and timings accumulate with HINCRBYFLOAT (timings as
// "<name>_count" and "<name>_sum_ms"); gauges overwrite with HSET.
//
// # Usage
//
//	client, err := redissink.Connect(ctx, redissink.Config{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	sink := redissink.New(redissink.NewRedisWriter(client), "reqkit:telemetry")
//	go sink.Run(ctx, time.Second)
//	defer sink.Close(context.Background())
//
//	tm := telemetry.New(telemetry.WithSink(sink))
package redissink
