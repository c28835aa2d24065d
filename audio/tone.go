package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/prize-wheel/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// waveSample evaluates one cycle of the wave at phase in [0, 1)
func waveSample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveTriangle:
		return 1.0 - 4.0*math.Abs(phase-0.5)
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// voice is a single oscillator with time-varying frequency and gain.
// It ends after total samples or after a requested fade completes.
type voice struct {
	rate  beep.SampleRate
	wave  WaveType
	freq  func(t float64) float64
	gain  func(t float64) float64
	phase float64

	position int
	total    int

	// Fade-out requested by QuietAll, in samples; fadeTotal 0 means none
	fadeTotal int
	fadeLeft  int
	fadeFrom  float64

	done bool
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.done {
		return 0, false
	}

	for i := range samples {
		if v.position >= v.total || (v.fadeTotal > 0 && v.fadeLeft <= 0) {
			v.done = true
			return i, i > 0
		}

		t := float64(v.position) / float64(v.rate)
		g := v.gain(t)
		if v.fadeTotal > 0 {
			g = math.Min(g, v.fadeFrom*float64(v.fadeLeft)/float64(v.fadeTotal))
			v.fadeLeft--
		}

		val := waveSample(v.wave, v.phase) * g
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq(t) / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.position++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// fade ramps the voice to silence over d, starting from its current gain
func (v *voice) fade(d time.Duration) {
	if v.done || v.fadeTotal > 0 {
		return
	}
	n := v.rate.N(d)
	if n < 1 {
		n = 1
	}
	v.fadeFrom = v.gain(float64(v.position) / float64(v.rate))
	v.fadeTotal = n
	v.fadeLeft = n
}

// newTone creates a fixed-pitch voice with linear attack, sustain and an exponential tail.
// The tail runs for three release time constants after duration.
func newTone(rate beep.SampleRate, freq float64, duration time.Duration, wave WaveType, volume float64, attack, release time.Duration) *voice {
	volume = ClampVolume(volume)
	if duration < 10*time.Millisecond {
		duration = 10 * time.Millisecond
	}

	return &voice{
		rate:  rate,
		wave:  wave,
		freq:  func(float64) float64 { return freq },
		gain:  attackSustainTail(volume, attack.Seconds(), duration.Seconds(), release.Seconds()),
		total: rate.N(duration + 3*release),
	}
}

func attackSustainTail(volume, attack, hold, tail float64) func(t float64) float64 {
	return func(t float64) float64 {
		switch {
		case attack > 0 && t < attack:
			return volume * t / attack
		case t < hold:
			return volume
		case tail > 0:
			return volume * math.Exp(-(t-hold)/tail)
		default:
			return 0
		}
	}
}

// newWinGlide creates the win cue: a sine sweeping through WinGlideFrequencies
func newWinGlide(rate beep.SampleRate) *voice {
	freqs := constants.WinGlideFrequencies
	offsets := constants.WinGlideOffsets

	freq := func(t float64) float64 {
		for i := 1; i < len(offsets); i++ {
			end := offsets[i].Seconds()
			if t < end {
				start := offsets[i-1].Seconds()
				k := (t - start) / (end - start)
				return freqs[i-1] + k*(freqs[i]-freqs[i-1])
			}
		}
		return freqs[len(freqs)-1]
	}

	attack := constants.WinAttack.Seconds()
	holdAt := constants.WinHoldAt.Seconds()
	glideEnd := constants.WinGlideDuration.Seconds()
	tail := constants.WinTailConstant.Seconds()
	gain := func(t float64) float64 {
		switch {
		case t < attack:
			return constants.WinPeakVolume * t / attack
		case t < holdAt:
			k := (t - attack) / (holdAt - attack)
			return constants.WinPeakVolume + k*(constants.WinHoldVolume-constants.WinPeakVolume)
		case t < glideEnd:
			return constants.WinHoldVolume
		default:
			return constants.WinHoldVolume * math.Exp(-(t-glideEnd)/tail)
		}
	}

	return &voice{
		rate:  rate,
		wave:  WaveSine,
		freq:  freq,
		gain:  gain,
		total: rate.N(constants.WinTotalDuration),
	}
}

// newCue builds the voice for a named cue
func newCue(rate beep.SampleRate, cue Cue) *voice {
	switch cue {
	case CueTick:
		return newTone(rate, constants.TickFrequency, constants.TickDuration, WaveTriangle,
			constants.TickVolume, constants.TickAttack, constants.TickRelease)
	case CueBlink:
		return newTone(rate, constants.BlinkFrequency, constants.BlinkDuration, WaveSquare,
			constants.BlinkVolume, constants.BlinkAttack, constants.BlinkRelease)
	case CueStart:
		return newTone(rate, constants.StartFrequency, constants.StartDuration, WaveSine,
			constants.StartVolume, constants.StartAttack, constants.StartRelease)
	case CueWin:
		return newWinGlide(rate)
	default:
		return nil
	}
}
