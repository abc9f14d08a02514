package common

// Conversation channels.
const (
	ChannelEmail   = "EMAIL"
	ChannelIGDM    = "IG_DM"
	ChannelXDM     = "X_DM"
	ChannelDiscord = "DISCORD"
	ChannelOther   = "OTHER"
)

const (
	DirOutbound = "OUTBOUND"
	DirInbound  = "INBOUND"
)

// Dispositions summarize how the exchange went; the reply generator uses
// these as context.
const (
	DispNoReply   = "NO_REPLY"
	DispInterest  = "INTERESTED"
	DispDeclined  = "DECLINED"
	DispNeedsInfo = "NEEDS_INFO"
	DispCounter   = "COUNTER"
)

var validChannels = map[string]struct{}{
	ChannelEmail: {}, ChannelIGDM: {}, ChannelXDM: {}, ChannelDiscord: {}, ChannelOther: {},
}

var validDispositions = map[string]struct{}{
	DispNoReply: {}, DispInterest: {}, DispDeclined: {}, DispNeedsInfo: {}, DispCounter: {},
}

// ConversationLog records one inbound/outbound exchange tied to a deal;
// never mutated after creation.
type ConversationLog struct {
	Id     string `json:"id"`
	DealId string `json:"dealId"`

	Channel   string `json:"channel"`
	Direction string `json:"direction"`

	Summary     string `json:"summary,omitempty"`
	Disposition string `json:"disposition,omitempty"`

	// Amount discussed during the exchange, if any
	Amount      float64  `json:"amount,omitempty"`
	TermsDelta  string   `json:"termsDelta,omitempty"`
	Attachments []string `json:"attachments,omitempty"`

	TS int64 `json:"ts"`
}

func (cl *ConversationLog) Check() error {
	if _, ok := validChannels[cl.Channel]; !ok {
		return ErrValidation("invalid channel %q", cl.Channel)
	}
	if cl.Direction != DirOutbound && cl.Direction != DirInbound {
		return ErrValidation("invalid direction %q", cl.Direction)
	}
	if cl.Disposition != "" {
		if _, ok := validDispositions[cl.Disposition]; !ok {
			return ErrValidation("invalid disposition %q", cl.Disposition)
		}
	}
	return nil
}
