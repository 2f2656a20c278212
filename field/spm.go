package field

// Channel identifies one of the ten named polar fields making up an
// agent's Saliency Polar Map. This is a closed enumeration, not a class
// hierarchy: SPMBundle stores a fixed array indexed by Channel.
type Channel int

// The fixed set of SPM channels. Only R1, F2, F4, and F5 are read by the
// core; the rest exist for boundary compatibility with the streaming
// collaborator's wire format.
const (
	ChannelT0 Channel = iota
	ChannelR0
	ChannelR1 // uncertainty
	ChannelF0
	ChannelF1
	ChannelF2 // saliency
	ChannelF3
	ChannelF4 // visibility
	ChannelF5 // observation stability
	ChannelM0

	numChannels = 10
)

// String returns the channel's fixed tag name.
func (c Channel) String() string {
	names := [numChannels]string{"T0", "R0", "R1", "F0", "F1", "F2", "F3", "F4", "F5", "M0"}
	if int(c) < 0 || int(c) >= numChannels {
		return "?"
	}
	return names[c]
}

// SPMBundle is an agent's ten-channel polar "view" of its environment.
type SPMBundle struct {
	channels [numChannels]PolarField
}

// NewSPMBundle returns a bundle with every channel zero-filled.
func NewSPMBundle() SPMBundle {
	return SPMBundle{}
}

// Get returns the field for the given channel.
func (s SPMBundle) Get(ch Channel) PolarField { return s.channels[ch] }

// Set overwrites the field for the given channel.
func (s *SPMBundle) Set(ch Channel, f PolarField) { s.channels[ch] = f }

// ZeroAll resets every channel to the zero field.
func (s *SPMBundle) ZeroAll() { *s = SPMBundle{} }

// GradTheta returns the angular gradient of the named channel.
func (s SPMBundle) GradTheta(ch Channel) PolarField { return GradTheta(s.channels[ch]) }

// GradR returns the radial gradient of the named channel.
func (s SPMBundle) GradR(ch Channel) PolarField { return GradR(s.channels[ch]) }

// GradMagnitude returns the gradient magnitude of the named channel.
func (s SPMBundle) GradMagnitude(ch Channel) PolarField { return GradMagnitude(s.channels[ch]) }
