package dataset

import (
	"math"
	"math/rand"

	"house_price/internal/domain"
)

// Split shuffles samples with a seeded permutation and returns train and test
// partitions. The first ceil(testRatio*n) shuffled rows form the test set; at
// least one row always stays in train.
func Split(samples []domain.Sample, testRatio float64, seed int64) (train, test []domain.Sample) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	n := len(samples)
	if n == 0 {
		return nil, nil
	}
	nTest := int(math.Ceil(testRatio * float64(n)))
	if nTest > n-1 {
		nTest = n - 1
	}

	rnd := rand.New(rand.NewSource(seed))
	perm := rnd.Perm(n)
	test = make([]domain.Sample, 0, nTest)
	train = make([]domain.Sample, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, samples[idx])
		} else {
			train = append(train, samples[idx])
		}
	}
	return train, test
}

// XY separates records from their targets.
func XY(samples []domain.Sample) ([]domain.Record, []float64) {
	x := make([]domain.Record, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Record
		y[i] = s.Price
	}
	return x, y
}
