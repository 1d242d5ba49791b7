package synth

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/YunChenqwq/MiditoBytebeat/compiler"
	"github.com/YunChenqwq/MiditoBytebeat/constants"
)

const (
	DefaultHostRate = 44100
	bufferSize      = 1024
)

// Player owns the audio device for one playback session: Start acquires
// the stream, Stop releases it. The zero state is stopped and a failed
// Start leaves it stopped, so the caller may simply retry.
type Player struct {
	hostRate float64
	synth    *Synthesizer
	stream   *portaudio.Stream
}

func NewPlayer(expr *compiler.Expression, hostRate float64) *Player {
	if hostRate <= 0 {
		hostRate = DefaultHostRate
	}
	return &Player{
		hostRate: hostRate,
		synth:    NewSynthesizer(expr, constants.VirtualSampleRate, hostRate),
	}
}

// SetExpression swaps the playing formula without interrupting the stream.
func (p *Player) SetExpression(expr *compiler.Expression) {
	p.synth.SetExpression(expr)
}

func (p *Player) Start() error {
	if p.stream != nil {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio engine unavailable: %w", err)
	}
	p.synth.Reset()
	stream, err := portaudio.OpenDefaultStream(0, 1, p.hostRate, bufferSize, p.synth.Render)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio engine unavailable: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio engine unavailable: %w", err)
	}
	p.stream = stream
	return nil
}

func (p *Player) Stop() error {
	if p.stream == nil {
		return nil
	}
	err := p.stream.Close()
	p.stream = nil
	p.synth.Reset()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
