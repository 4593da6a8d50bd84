package huffman

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeTableSingleLeaf(t *testing.T) {
	tree, err := BuildTree(CountFrequencies([]byte("zzz")))
	require.NoError(t, err)
	table := NewCodeTable(tree)
	require.Equal(t, Code("0"), table.Lookup('z'))
	require.Equal(t, 1, table.Len())
	require.False(t, table.Has('a'))
}

func TestCodeTableAAAB(t *testing.T) {
	freq := CountFrequencies([]byte("aaab"))
	tree, err := BuildTree(freq)
	require.NoError(t, err)
	table := NewCodeTable(tree)
	require.Equal(t, Code("1"), table.Lookup('a'))
	require.Equal(t, Code("0"), table.Lookup('b'))
	require.Equal(t, uint64(4), table.EncodedBits(freq))
}

func TestCodeTablePrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inputs := map[string][]byte{
		"text":     []byte("the quick brown fox jumps over the lazy dog"),
		"skewed":   append(make([]byte, 1000), 1, 2, 3),
		"allBytes": allBytes(),
		"random":   randomBytes(rng, 4096, 256),
		"fibonacci": func() []byte {
			// fibonacci counts give the deepest possible tree
			var out []byte
			a, b := 1, 1
			for symbol := 0; symbol < 20; symbol++ {
				for i := 0; i < a; i++ {
					out = append(out, byte(symbol))
				}
				a, b = b, a+b
			}
			return out
		}(),
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			freq := CountFrequencies(input)
			tree, err := BuildTree(freq)
			require.NoError(t, err)
			table := NewCodeTable(tree)
			require.True(t, table.IsPrefixFree())
			require.Equal(t, freq.Distinct(), table.Len())
			for _, symbol := range freq.Symbols() {
				require.True(t, table.Has(symbol))
			}
		})
	}
}

func TestIsPrefixFreeDetectsPrefix(t *testing.T) {
	var table CodeTable
	table['a'] = "0"
	table['b'] = "01"
	require.False(t, table.IsPrefixFree())
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func randomBytes(rng *rand.Rand, n, alphabet int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(rng.Intn(alphabet))
	}
	return out
}
