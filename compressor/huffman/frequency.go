package huffman

// FrequencyTable counts occurrences of every byte value.
type FrequencyTable [256]uint64

func CountFrequencies(content []byte) FrequencyTable {
	var freq FrequencyTable
	for _, b := range content {
		freq[b]++
	}
	return freq
}

// Distinct returns the number of byte values that occur at least once.
func (freq *FrequencyTable) Distinct() int {
	n := 0
	for _, count := range freq {
		if count != 0 {
			n++
		}
	}
	return n
}

// Symbols returns the byte values that occur, in ascending order.
func (freq *FrequencyTable) Symbols() []byte {
	symbols := make([]byte, 0, freq.Distinct())
	for symbol, count := range freq {
		if count != 0 {
			symbols = append(symbols, byte(symbol))
		}
	}
	return symbols
}

// Total returns the number of bytes counted.
func (freq *FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range freq {
		total += count
	}
	return total
}
