package workloads

// sumScaleFactor controls how many terms the triangular-sum workload adds.
const sumScaleFactor = 100

// SumBenchmark adds the integers 0..SCALE_FACTOR and checks the result
// against the closed-form triangular sum.
func SumBenchmark() bool {
	sum := 0
	for i := 0; i <= sumScaleFactor; i++ {
		sum += i
	}
	expected := sumScaleFactor * (sumScaleFactor + 1) / 2
	return sum == expected
}
