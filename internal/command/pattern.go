package command

import (
	"math"
	"regexp"
	"strconv"
)

var (
	channelMentionRe = regexp.MustCompile(`^<#(\d+)>$`)
	userMentionRe    = regexp.MustCompile(`^<@!?(\d+)>$`)
	roleMentionRe    = regexp.MustCompile(`^<@&(\d+)>$`)
	emoteRe          = regexp.MustCompile(`^<a?:\w+:(\d+)>$`)
	messageLinkRe    = regexp.MustCompile(`^https://(?:\w+\.)?discord(?:app)?\.com/channels/(?:\d+|@me)/(\d+)/(\d+)$`)
	snowflakeRe      = regexp.MustCompile(`^\d{15,20}$`)
)

// parseNumber matches the number branch: the token must parse as a finite
// number. Infinity spellings parse but are not accepted.
func parseNumber(token string) (float64, bool) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
