package tifile

// Checksum returns the 16-bit sum of data, the checksum every TI file
// format stores after its variable data.
func Checksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}
