package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightedDistributionValidation(t *testing.T) {
	_, err := NewWeightedDistribution(nil, nil)
	require.Error(t, err)

	_, err = NewWeightedDistribution([]string{"US", "CA"}, []float64{0.5})
	require.Error(t, err)

	_, err = NewWeightedDistribution([]string{"US"}, []float64{-1})
	require.Error(t, err)

	_, err = NewWeightedDistribution([]string{"US"}, []float64{0})
	require.Error(t, err)

	// weights need not sum to 1
	d, err := NewWeightedDistribution([]string{"US", "CA"}, []float64{3, 1})
	require.NoError(t, err)
	require.NotNil(t, d)
}

func TestWeightedDistributionDegenerateWeights(t *testing.T) {
	Seed(1)
	d, err := NewWeightedDistribution([]string{"update", "read"}, []float64{1, 0})
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.Equal(t, "update", d.Sample())
	}

	d, err = NewWeightedDistribution([]string{"update", "read"}, []float64{0, 1})
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.Equal(t, "read", d.Sample())
	}
}

func TestWeightedDistributionCoversChoices(t *testing.T) {
	Seed(42)
	d, err := NewWeightedDistribution([]string{"US", "CA", "FR"}, []float64{0.8, 0.1, 0.1})
	require.NoError(t, err)
	seen := map[string]int{}
	for i := 0; i < 10000; i++ {
		seen[d.Sample()]++
	}
	require.Len(t, seen, 3)
	require.Greater(t, seen["US"], seen["CA"])
	require.Greater(t, seen["US"], seen["FR"])
}

func TestWeightedDistributionDeterminism(t *testing.T) {
	d, err := NewWeightedDistribution([]string{"US", "CA", "FR", "IL", "UK"}, []float64{0.8, 0.05, 0.05, 0.05, 0.05})
	require.NoError(t, err)

	Seed(12345)
	first := d.SampleN(1000)
	Seed(12345)
	second := d.SampleN(1000)
	require.Equal(t, first, second)
}

func TestSampleWithReplacement(t *testing.T) {
	Seed(7)
	items := []string{"a", "b"}
	sample := SampleWithReplacement(items, 100)
	require.Len(t, sample, 100)
	for _, s := range sample {
		require.Contains(t, items, s)
	}

	require.Nil(t, SampleWithReplacement(nil, 10))
}
