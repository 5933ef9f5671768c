package bot

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/hraban/opus.v2"

	"soundscribe/audio"
	"soundscribe/contract"
	"soundscribe/domain"
)

// Discord delivers 20ms opus frames: 960 samples per channel at 48 kHz.
const frameSize = 960

// VoiceCapture adapts a discordgo voice connection to the recorder's
// capture contract: opus packets are decoded to PCM per SSRC and routed
// into the session sink tagged with the speaking user.
type VoiceCapture struct {
	log *slog.Logger
	vc  *discordgo.VoiceConnection

	mu       sync.Mutex
	users    map[uint32]domain.ParticipantID
	decoders map[uint32]*opus.Decoder

	started  bool
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewVoiceCapture(log *slog.Logger, vc *discordgo.VoiceConnection) *VoiceCapture {
	return &VoiceCapture{
		log:      log,
		vc:       vc,
		users:    make(map[uint32]domain.ParticipantID),
		decoders: make(map[uint32]*opus.Decoder),
		stop:     make(chan struct{}),
	}
}

// StartCapture begins draining the opus receive channel into sink.
// onStopped fires once the receive loop has fully drained and exited.
func (c *VoiceCapture) StartCapture(sink contract.AudioSink, onStopped func()) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return fmt.Errorf("capture already started")
	}
	c.started = true
	c.mu.Unlock()

	// Speaking updates carry the SSRC -> user mapping the packets lack.
	c.vc.AddHandler(c.onSpeakingUpdate)

	c.wg.Add(1)
	go c.receive(sink)

	go func() {
		c.wg.Wait()
		if onStopped != nil {
			onStopped()
		}
	}()
	return nil
}

// StopCapture signals the receive loop and blocks until it has exited.
func (c *VoiceCapture) StopCapture() error {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
	return nil
}

func (c *VoiceCapture) receive(sink contract.AudioSink) {
	defer c.wg.Done()

	for {
		select {
		case <-c.stop:
			return
		case pkt, ok := <-c.vc.OpusRecv:
			if !ok {
				c.log.Debug("Voice receive channel closed")
				return
			}
			c.handlePacket(sink, pkt)
		}
	}
}

func (c *VoiceCapture) handlePacket(sink contract.AudioSink, pkt *discordgo.Packet) {
	if pkt == nil || len(pkt.Opus) == 0 {
		return
	}

	c.mu.Lock()
	participant, known := c.users[pkt.SSRC]
	dec, hasDec := c.decoders[pkt.SSRC]
	if !hasDec {
		var err error
		dec, err = opus.NewDecoder(audio.SampleRate, audio.Channels)
		if err != nil {
			c.mu.Unlock()
			c.log.Error("Failed to create opus decoder", "ssrc", pkt.SSRC, "error", err)
			return
		}
		c.decoders[pkt.SSRC] = dec
	}
	c.mu.Unlock()

	if !known {
		// Audio can race the first speaking update; keep the stream under
		// a synthetic id rather than dropping it.
		participant = domain.ParticipantID(fmt.Sprintf("ssrc-%d", pkt.SSRC))
	}

	pcm := make([]int16, frameSize*audio.Channels)
	n, err := dec.Decode(pkt.Opus, pcm)
	if err != nil {
		c.log.Debug("Failed to decode opus frame", "ssrc", pkt.SSRC, "error", err)
		return
	}

	out := make([]byte, n*audio.Channels*2)
	for i := 0; i < n*audio.Channels; i++ {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(pcm[i]))
	}
	sink.Write(participant, out)
}

func (c *VoiceCapture) onSpeakingUpdate(_ *discordgo.VoiceConnection, vs *discordgo.VoiceSpeakingUpdate) {
	if vs == nil || vs.UserID == "" {
		return
	}
	c.mu.Lock()
	c.users[uint32(vs.SSRC)] = domain.ParticipantID(vs.UserID)
	c.mu.Unlock()
}
