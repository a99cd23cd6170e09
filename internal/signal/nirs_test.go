package signal_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/analysis"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
)

// GeneratorSuite recorre NIRSSim.Run sobre la tabla de tareas.
type GeneratorSuite struct {
	suite.Suite
}

// TestLengthInvariant: len(time) == len(oxy) == len(deoxy) == duration*20.
func (s *GeneratorSuite) TestLengthInvariant() {
	for _, task := range signal.Tasks() {
		for d := signal.MinDuration; d <= signal.MaxDuration; d++ {
			res, err := signal.NewNIRSSim(int64(d)).Run(signal.Request{Task: task, Duration: d, Noise: 0.1})
			require.NoError(s.T(), err)
			want := d * signal.SampleRate
			require.Len(s.T(), res.Time, want)
			require.Len(s.T(), res.Oxy, want)
			require.Len(s.T(), res.Deoxy, want)
			require.Len(s.T(), res.Signal, want)
		}
	}
}

// TestTimeAxis: extremos inclusivos y crecimiento estricto.
func (s *GeneratorSuite) TestTimeAxis() {
	res, err := signal.NewNIRSSim(1).Run(signal.Request{Task: signal.MotorTask, Duration: 7, Noise: 0})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.0, res.Time[0])
	require.Equal(s.T(), 7.0, res.Time[res.Len()-1])
	for i := 1; i < res.Len(); i++ {
		require.Greater(s.T(), res.Time[i], res.Time[i-1], "time must strictly increase at %d", i)
	}
}

// TestZeroNoiseDeterminism: semillas distintas sin ruido dan los mismos canales.
func (s *GeneratorSuite) TestZeroNoiseDeterminism() {
	req := signal.Request{Task: signal.LanguageTask, Duration: 12, Noise: 0}
	a, err := signal.NewNIRSSim(1).Run(req)
	require.NoError(s.T(), err)
	b, err := signal.NewNIRSSim(99).Run(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), a.Oxy, b.Oxy)
	require.Equal(s.T(), a.Deoxy, b.Deoxy)
	require.Equal(s.T(), a.Index, b.Index)
}

// TestNoiseChangesOutput: con ruido, cada semilla da otra corrida.
func (s *GeneratorSuite) TestNoiseChangesOutput() {
	req := signal.Request{Task: signal.LanguageTask, Duration: 12, Noise: 0.3}
	a, err := signal.NewNIRSSim(1).Run(req)
	require.NoError(s.T(), err)
	b, err := signal.NewNIRSSim(2).Run(req)
	require.NoError(s.T(), err)
	require.NotEqual(s.T(), a.Oxy, b.Oxy)
}

// TestSameSeedReproducible: la semilla determina la corrida con ruido.
func (s *GeneratorSuite) TestSameSeedReproducible() {
	req := signal.Request{Task: signal.CognitiveTest, Duration: 20, Noise: 0.5}
	a, _ := signal.NewNIRSSim(42).Run(req)
	b, _ := signal.NewNIRSSim(42).Run(req)
	require.Equal(s.T(), a.Oxy, b.Oxy)
}

// TestChannelDerivation: oxy/deoxy contra la señal compuesta.
func (s *GeneratorSuite) TestChannelDerivation() {
	res, err := signal.NewNIRSSim(3).Run(signal.Request{Task: signal.RestingState, Duration: 10, Noise: 0.2})
	require.NoError(s.T(), err)
	for i, t := range res.Time {
		drift := math.Sin(0.1 * math.Pi * t)
		require.InDelta(s.T(), res.Signal[i]+0.5*drift, res.Oxy[i], 1e-12)
		require.InDelta(s.T(), -0.6*res.Signal[i]+0.2*drift, res.Deoxy[i], 1e-12)
	}
	require.InDelta(s.T(), analysis.OxygenationIndex(res.Oxy, res.Deoxy), res.Index, 1e-15)
}

// TestIndexFinite barre tareas, duraciones y niveles de ruido.
func (s *GeneratorSuite) TestIndexFinite() {
	for _, task := range signal.Tasks() {
		for _, d := range []int{5, 17, 30} {
			for _, n := range []float64{0, 0.25, 0.5} {
				res, err := signal.NewNIRSSim(int64(d)).Run(signal.Request{Task: task, Duration: d, Noise: n})
				require.NoError(s.T(), err)
				require.False(s.T(), math.IsNaN(res.Index) || math.IsInf(res.Index, 0), "%s %d %g", task, d, n)
			}
		}
	}
}

// TestVisualTaskScenario: la oscilación de 0.25 Hz domina la señal compuesta.
func (s *GeneratorSuite) TestVisualTaskScenario() {
	res, err := signal.Generate(signal.VisualTask, 15, 0.0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 300, res.Len())
	require.Equal(s.T(), 0.0, res.Time[0])
	require.Equal(s.T(), 15.0, res.Time[res.Len()-1])

	ref := make([]float64, res.Len())
	for i, t := range res.Time {
		ref[i] = math.Sin(2 * math.Pi * 0.25 * t)
	}
	require.Greater(s.T(), analysis.Correlation(res.Signal, ref), 0.9)

	resolution := float64(signal.SampleRate) / float64(res.Len())
	require.InDelta(s.T(), 0.25, analysis.DominantFrequency(res.Signal, signal.SampleRate), resolution)
}

// TestUnknownTask: nombres fuera de la tabla fallan sin producir salida.
func (s *GeneratorSuite) TestUnknownTask() {
	res, err := signal.Generate("Not A Task", 10, 0.1)
	require.Nil(s.T(), res)
	require.ErrorIs(s.T(), err, signal.ErrUnknownTask)

	var ute *signal.UnknownTaskError
	require.True(s.T(), errors.As(err, &ute))
	require.Equal(s.T(), "Not A Task", ute.Task)
}

// TestRangeValidation: límites de duración y ruido.
func (s *GeneratorSuite) TestRangeValidation() {
	sim := signal.NewNIRSSim(1)
	_, err := sim.Run(signal.Request{Task: signal.VisualTask, Duration: 4, Noise: 0})
	require.ErrorIs(s.T(), err, signal.ErrInvalidDuration)
	_, err = sim.Run(signal.Request{Task: signal.VisualTask, Duration: 31, Noise: 0})
	require.ErrorIs(s.T(), err, signal.ErrInvalidDuration)
	_, err = sim.Run(signal.Request{Task: signal.VisualTask, Duration: 10, Noise: 0.51})
	require.ErrorIs(s.T(), err, signal.ErrInvalidNoise)
	_, err = sim.Run(signal.Request{Task: signal.VisualTask, Duration: 10, Noise: math.NaN()})
	require.ErrorIs(s.T(), err, signal.ErrInvalidNoise)
	_, err = sim.Run(signal.Request{Task: signal.VisualTask, Duration: 30, Noise: 0.5})
	require.NoError(s.T(), err)
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func TestNewSeedUnique(t *testing.T) {
	const n = 64
	seeds := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seeds <- signal.NewSeed()
		}()
	}
	wg.Wait()
	close(seeds)

	seen := make(map[int64]bool, n)
	for s := range seeds {
		require.False(t, seen[s], "duplicate seed %d", s)
		seen[s] = true
	}
}

func TestGenerateConcurrentNoiseDiffers(t *testing.T) {
	results := make([]*signal.Result, 8)
	errs := make([]error, len(results))
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = signal.Generate(signal.MotorTask, 10, 0.4)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	for i := 1; i < len(results); i++ {
		require.NotEqual(t, results[0].Oxy, results[i].Oxy)
	}
}
