package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, Text(tt.data))
		})
	}
}

func TestKey(t *testing.T) {
	require.Equal(t, Key(125, 3, 2), Key(125, 3, 2))
	require.NotEqual(t, Key(125, 3, 2), Key(125, 2, 3))
	require.NotEqual(t, Key(125, 3, 2), Key(128, 3, 2))
}

func TestCombine(t *testing.T) {
	a, b := Text("a"), Text("b")

	require.Equal(t, Combine(a, b), Combine(a, b))
	require.NotEqual(t, Combine(a, b), Combine(b, a))
	require.NotEqual(t, Combine(a), Combine(a, b))
}

func BenchmarkText(b *testing.B) {
	line := " 1.001000+3 9.991673-1          0          0          0          5 125 1451    1"
	for b.Loop() {
		_ = Text(line)
	}
}
