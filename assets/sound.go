package assets

import (
	"encoding/binary"
	"math"
	"time"
)

// Tone returns signed 16-bit little-endian stereo PCM of a sine tone with a
// linear fade out, the format ebiten's audio players take directly.
func Tone(sampleRate int, freq float64, d time.Duration, volume float64) []byte {
	n := int(float64(sampleRate) * d.Seconds())
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * volume * fade
		s := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

// Sound effects keyed by editor event.
const (
	SoundPaint = "paint"
	SoundErase = "erase"
	SoundUndo  = "undo"
	SoundError = "error"
)

var soundFreq = map[string]float64{
	SoundPaint: 880,
	SoundErase: 440,
	SoundUndo:  660,
	SoundError: 220,
}

// Sound returns the PCM for a named effect, or nil for unknown names.
func Sound(name string, sampleRate int) []byte {
	f, ok := soundFreq[name]
	if !ok {
		return nil
	}
	return Tone(sampleRate, f, 60*time.Millisecond, 0.2)
}
