package prefixtree

// scramble mixes a symbol into a hash array index base. It is the 64-bit
// finalizer from splitmix64: two rounds of multiply and xorshift. The mix is
// bijective, so distinct symbols never collapse before the modulo, and it
// breaks up the sequential and strided symbol runs that linear probing
// degrades on. The identity must not be used here: flat workloads with
// consecutive symbols would place every key in one primary cluster.
func scramble(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
