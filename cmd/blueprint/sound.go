package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/blueprint/assets"
)

const sampleRate = 44100

type sounds struct {
	players map[string]*audio.Player
}

func newSounds() *sounds {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	s := &sounds{players: make(map[string]*audio.Player)}
	for _, name := range []string{assets.SoundPaint, assets.SoundErase, assets.SoundUndo, assets.SoundError} {
		s.players[name] = ctx.NewPlayerFromBytes(assets.Sound(name, sampleRate))
	}
	return s
}

func (s *sounds) play(name string) {
	p, ok := s.players[name]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("sound %s: %v", name, err)
		return
	}
	p.Play()
}
