package codec

import (
	"testing"

	"github.com/hexforge/fieldstate/lib/state"
	statetesting "github.com/hexforge/fieldstate/lib/state/testing"
)

// benchmarkPlayers returns named (object, mode) pairs covering the payload
// shapes that matter in practice: clean no-op diffs, single-property diffs,
// diffs touching a nested object, and complete snapshots.
func benchmarkPlayers() map[string]struct {
	obj  *statetesting.PlayerState
	full bool
} {
	clean := statetesting.SeededPlayer()

	scalarDiff := statetesting.SeededPlayer()
	scalarDiff.SetHealth(1)

	nestedDiff := statetesting.SeededPlayer()
	nestedDiff.Pos().SetX(128)

	wideDiff := statetesting.SeededPlayer()
	wideDiff.SetName("benchmark-player-name")
	wideDiff.SetHealth(1)
	wideDiff.SetScore(500_000)
	wideDiff.Pos().SetX(128)
	wideDiff.Pos().SetY(-128)
	_ = wideDiff.Slots().Set(0, state.Uint32(42))
	_ = wideDiff.Stats().Set(state.String("luck"), state.Int32(7))

	return map[string]struct {
		obj  *statetesting.PlayerState
		full bool
	}{
		"NoOpDiff":      {obj: clean, full: false},
		"ScalarDiff":    {obj: scalarDiff, full: false},
		"NestedDiff":    {obj: nestedDiff, full: false},
		"WideDiff":      {obj: wideDiff, full: false},
		"FullSnapshot":  {obj: statetesting.SeededPlayer(), full: true},
		"DirtySnapshot": {obj: wideDiff, full: true},
	}
}

// BenchmarkSerialize benchmarks encoding for the various payload shapes
func BenchmarkSerialize(b *testing.B) {
	for name, bc := range benchmarkPlayers() {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, err := Serialize(bc.obj, bc.full)
				if err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}
			}
		})
	}
}

// BenchmarkDeserialize benchmarks decoding into a fresh instance
func BenchmarkDeserialize(b *testing.B) {
	players := benchmarkPlayers()
	serializedData := make(map[string][]byte)

	// Pre-serialize all payloads
	for name, bc := range players {
		data, err := Serialize(bc.obj, bc.full)
		if err != nil {
			b.Fatalf("Failed to serialize %s: %v", name, err)
		}
		serializedData[name] = data
	}

	for name := range players {
		b.Run(name, func(b *testing.B) {
			data := serializedData[name]
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, err := Deserialize[statetesting.PlayerState](data)
				if err != nil {
					b.Fatalf("Failed to deserialize: %v", err)
				}
			}
		})
	}
}

// BenchmarkApply benchmarks applying a diff onto an existing baseline
func BenchmarkApply(b *testing.B) {
	source := statetesting.SeededPlayer()
	source.SetHealth(1)
	source.Pos().SetX(128)
	data, err := Serialize(source, false)
	if err != nil {
		b.Fatalf("Failed to serialize: %v", err)
	}

	target := statetesting.SeededPlayer()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := Apply(data, target); err != nil {
			b.Fatalf("Failed to apply: %v", err)
		}
	}
}
