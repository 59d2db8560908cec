package hearing

// NamePlaceholder is shown in the admin list when no message qualifies as
// a display name.
const NamePlaceholder = "未取得"

const (
	maxNameSourceLen = 50
	maxNameLen       = 20
)

// Extract derives the admin-list summary for a transcript: the display
// name is the content of the first user message shorter than 50
// characters, truncated to 20; the answer count is the number of user
// messages. The first short reply usually carries the client's name
// because the interview prompt asks for it up front. A session where the
// client never sends a short message keeps the 未取得 placeholder.
//
// Lengths are counted in runes so Japanese content is never split
// mid-character.
func Extract(messages []Message) (name string, answerCount int) {
	name = NamePlaceholder

	for _, msg := range messages {
		if msg.Role != RoleUser {
			continue
		}
		answerCount++

		if name != NamePlaceholder {
			continue
		}
		runes := []rune(msg.Content)
		if len(runes) < maxNameSourceLen {
			if len(runes) > maxNameLen {
				runes = runes[:maxNameLen]
			}
			name = string(runes)
		}
	}

	return name, answerCount
}
