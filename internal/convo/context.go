package convo

// DefaultMaxTurns is the sliding-window size: at most this many user+
// assistant pairs are carried from persisted history into a new call.
const DefaultMaxTurns = 5

// BuildMessages assembles the outgoing message list for a provider call
// per SPEC_FULL.md §4.4: a fixed system prompt, a sliding window over
// persisted history, and the new user turn, pruned to a token budget.
//
// It is pure: it never touches disk and never mutates persisted. The
// caller (Session Store) is responsible for appending the completed turn
// once a response comes back.
//
// Escalate is true when even system+new-user alone exceeds contextLimit,
// signaling the model selector should force a large-context model.
func BuildMessages(systemPrompt string, persisted State, newUserContent string, maxTurns, contextLimit int) (messages []Message, escalate bool) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	windowed := slidingWindow(persisted.Messages, maxTurns)

	messages = make([]Message, 0, len(windowed)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	messages = append(messages, windowed...)
	messages = append(messages, Message{Role: RoleUser, Content: newUserContent})

	if contextLimit <= 0 {
		return messages, false
	}

	for estimateMessages(messages) > contextLimit && len(messages) > 2 {
		// messages[0] is system, messages[1:3] is the oldest surviving
		// user+assistant pair; drop it, keeping ordering intact.
		messages = append(messages[:1], messages[3:]...)
	}

	if estimateMessages(messages) > contextLimit {
		escalate = true
	}

	return messages, escalate
}

// slidingWindow keeps at most maxTurns user+assistant pairs from history,
// most recent last.
func slidingWindow(history []Message, maxTurns int) []Message {
	maxMessages := maxTurns * 2
	if len(history) <= maxMessages {
		return append([]Message(nil), history...)
	}
	return append([]Message(nil), history[len(history)-maxMessages:]...)
}

func estimateMessages(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m.Content)
	}
	return total
}
