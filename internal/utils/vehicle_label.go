package utils

import "strings"

// BrandLabel returns the leading brand token of a vehicle name
// ("Scania R730 #1" -> "Scania"). Blank names fall back to the name itself.
func BrandLabel(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}

// Mention formats a user id the way chat clients render a user reference.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// PlainText strips chat markdown and user mentions so a message can go to
// e-mail or SMS.
func PlainText(message string) string {
	var b strings.Builder
	for i := 0; i < len(message); i++ {
		if strings.HasPrefix(message[i:], "<@") {
			if end := strings.IndexByte(message[i:], '>'); end > 0 {
				b.WriteString("@" + message[i+2:i+end])
				i += end
				continue
			}
		}
		if message[i] == '*' {
			continue
		}
		b.WriteByte(message[i])
	}
	return b.String()
}
