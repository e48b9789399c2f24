package leaf

const (
	// MaxSteps bounds the reason-act loop so a confused model cannot spin
	// on tool calls forever.
	MaxSteps = 5

	defaultTemperature = 0.3
)

const exhaustedReply = "I wasn't able to finish working on that request. Please try rephrasing it."
