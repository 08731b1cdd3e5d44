package numerology

// Master numbers are exempt from digit-sum reduction.
func isMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// DigitSum returns the sum of the decimal digits of n (single pass).
func DigitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// ReduceDigits repeatedly replaces n with the sum of its decimal digits until
// a single digit remains. The master-number check runs on every intermediate
// value, so a reduction that lands on 11, 22 or 33 stops there.
func ReduceDigits(n int) int {
	for {
		if isMaster(n) {
			return n
		}
		if n <= 9 {
			return n
		}
		n = DigitSum(n)
	}
}
