package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		token string
		want  float64
		ok    bool
	}{
		{"42", 42, true},
		{"3.5", 3.5, true},
		{"-7", -7, true},
		{"0", 0, true},
		{"Infinity", 0, false},
		{"-Infinity", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.token)
		assert.Equal(t, tt.ok, ok, "token %q", tt.token)
		if tt.ok {
			assert.Equal(t, tt.want, got, "token %q", tt.token)
		}
	}
}

func TestMentionPatterns(t *testing.T) {
	assert.True(t, channelMentionRe.MatchString("<#123456789012345678>"))
	assert.False(t, channelMentionRe.MatchString("#general"))

	assert.True(t, userMentionRe.MatchString("<@123>"))
	assert.True(t, userMentionRe.MatchString("<@!123>"))
	assert.False(t, userMentionRe.MatchString("<@&123>"))

	assert.True(t, roleMentionRe.MatchString("<@&123>"))

	assert.True(t, emoteRe.MatchString("<:smile:123456789>"))
	assert.True(t, emoteRe.MatchString("<a:party:123456789>"))

	assert.True(t, messageLinkRe.MatchString("https://discord.com/channels/1/2/3"))
	assert.True(t, messageLinkRe.MatchString("https://ptb.discordapp.com/channels/@me/2/3"))
	assert.False(t, messageLinkRe.MatchString("https://example.com/channels/1/2/3"))

	assert.True(t, snowflakeRe.MatchString("123456789012345678"))
	assert.False(t, snowflakeRe.MatchString("123"))
}
