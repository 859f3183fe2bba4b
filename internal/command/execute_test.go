package command

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	channels map[string]*discordgo.Channel
	messages map[string]*discordgo.Message
	users    map[string]*discordgo.User
	roles    map[string]*discordgo.Role
	guilds   map[string]*discordgo.Guild

	calls []string
}

func (r *fakeResolver) ChannelByID(id string) (*discordgo.Channel, error) {
	r.calls = append(r.calls, "channel:"+id)
	if c, ok := r.channels[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("Could not find a channel with ID `%s`.", id)
}

func (r *fakeResolver) MessageByID(channelID, messageID string) (*discordgo.Message, error) {
	r.calls = append(r.calls, "message:"+channelID+"/"+messageID)
	if m, ok := r.messages[channelID+"/"+messageID]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("Could not find message `%s` in channel `%s`.", messageID, channelID)
}

func (r *fakeResolver) UserByID(id string) (*discordgo.User, error) {
	r.calls = append(r.calls, "user:"+id)
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("Could not find a user with ID `%s`.", id)
}

func (r *fakeResolver) RoleByID(guildID, id string) (*discordgo.Role, error) {
	r.calls = append(r.calls, "role:"+guildID+"/"+id)
	if role, ok := r.roles[id]; ok {
		return role, nil
	}
	return nil, fmt.Errorf("Could not find a role with ID `%s` on this server.", id)
}

func (r *fakeResolver) GuildByID(id string) (*discordgo.Guild, error) {
	r.calls = append(r.calls, "guild:"+id)
	if g, ok := r.guilds[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("Could not find a server with ID `%s`.", id)
}

// testContext returns a guild-channel invocation context plus the list of
// messages sent through it.
func testContext(r Resolver) (*CallContext, *[]string) {
	sent := &[]string{}
	ctx := &CallContext{
		Author:   &discordgo.User{ID: "42", Username: "tester"},
		Member:   &discordgo.Member{},
		GuildID:  "guild-1",
		Channel:  &discordgo.Channel{ID: "chan-1", Name: "general"},
		Prefix:   "!",
		Resolver: r,
		Send: func(content string) error {
			*sent = append(*sent, content)
			return nil
		},
	}
	return ctx, sent
}

func TestExecuteTemplateLeaf(t *testing.T) {
	node := &Node{Template: "pong"}
	ctx, sent := testContext(&fakeResolver{})
	acc := NewAccumulator("ping", nil)

	err := node.Execute(nil, ctx, acc)

	require.NoError(t, err)
	assert.Equal(t, []string{"pong"}, *sent)
	assert.Empty(t, ctx.Args, "template leaves must not mutate the call context")
}

func TestExecuteTemplateSubstitution(t *testing.T) {
	node := &Node{Template: "{author} uses {prefix} to run {command}"}
	ctx, sent := testContext(&fakeResolver{})
	acc := NewAccumulator("greet", nil)

	require.NoError(t, node.Execute(nil, ctx, acc))
	require.Len(t, *sent, 1)
	assert.Equal(t, "<@42> uses ! to run !greet", (*sent)[0])
}

func TestExecuteNamedSubcommand(t *testing.T) {
	root := &Node{}
	root.Sub("ping", &Node{Template: "pong"})
	ctx, sent := testContext(&fakeResolver{})

	err := root.Execute([]string{"ping"}, ctx, NewAccumulator("ping", []string{"ping"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"pong"}, *sent)
}

func TestAliasSharedIdentity(t *testing.T) {
	root := &Node{}
	child := &Node{Template: "hi"}
	root.Sub("color", child, "colour")

	byName, ok := root.Lookup("color")
	require.True(t, ok)
	byAlias, ok := root.Lookup("colour")
	require.True(t, ok)

	assert.Same(t, byName, byAlias)

	// A metadata edit through one key is visible through the other.
	byAlias.Description = "changed"
	assert.Equal(t, "changed", byName.Description)
}

func TestMetadataInheritance(t *testing.T) {
	t.Run("child override wins", func(t *testing.T) {
		root := &Node{}
		root.Sub("admin", &Node{Permission: Level(2), Template: "ok"})
		ctx, _ := testContext(&fakeResolver{})
		ctx.Level = 0

		err := root.Execute([]string{"admin"}, ctx, NewAccumulator("admin", []string{"admin"}))
		require.Error(t, err)

		ctx2, sent := testContext(&fakeResolver{})
		ctx2.Level = 2
		require.NoError(t, root.Execute([]string{"admin"}, ctx2, NewAccumulator("admin", []string{"admin"})))
		assert.Equal(t, []string{"ok"}, *sent)
	})

	t.Run("no override resolves to root default", func(t *testing.T) {
		root := &Node{}
		root.Sub("open", &Node{Template: "ok"})
		acc := NewAccumulator("open", []string{"open"})
		ctx, _ := testContext(&fakeResolver{})

		require.NoError(t, root.Execute([]string{"open"}, ctx, acc))
		assert.Equal(t, DefaultPermission, acc.Permission)
		assert.Equal(t, DefaultNSFW, acc.NSFW)
		assert.Equal(t, DefaultChannel, acc.Channel)
	})
}

func TestNamedSubcommandBeatsChannelMention(t *testing.T) {
	resolver := &fakeResolver{channels: map[string]*discordgo.Channel{
		"123": {ID: "123"},
	}}
	root := &Node{ChannelArg: &Node{Template: "channel branch"}}
	root.Sub("<#123>", &Node{Template: "named branch"})
	ctx, sent := testContext(resolver)

	err := root.Execute([]string{"<#123>"}, ctx, NewAccumulator("x", []string{"<#123>"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"named branch"}, *sent)
	assert.Empty(t, resolver.calls, "the name match must win before any lookup happens")
}

func TestChannelBranch(t *testing.T) {
	resolver := &fakeResolver{channels: map[string]*discordgo.Channel{
		"555": {ID: "555", Name: "lounge"},
	}}
	var got *discordgo.Channel
	root := &Node{ChannelArg: &Node{Run: func(ctx *CallContext) error {
		got, _ = ctx.ChannelArg(0)
		return nil
	}}}
	ctx, _ := testContext(resolver)
	acc := NewAccumulator("x", []string{"<#555>"})

	require.NoError(t, root.Execute([]string{"<#555>"}, ctx, acc))
	require.NotNil(t, got)
	assert.Equal(t, "lounge", got.Name)
	assert.Equal(t, []string{"<channel>"}, acc.Symbolic)
}

func TestMessageLinkBranch(t *testing.T) {
	resolver := &fakeResolver{messages: map[string]*discordgo.Message{
		"222/333": {ID: "333", Content: "pinned"},
	}}
	var got *discordgo.Message
	root := &Node{MessageArg: &Node{Run: func(ctx *CallContext) error {
		if len(ctx.Args) > 0 && ctx.Args[0].Kind == ArgMessage {
			got = ctx.Args[0].Message
		}
		return nil
	}}}
	ctx, _ := testContext(resolver)
	link := "https://discord.com/channels/111/222/333"
	acc := NewAccumulator("x", []string{link})

	require.NoError(t, root.Execute([]string{link}, ctx, acc))
	require.NotNil(t, got)
	assert.Equal(t, "pinned", got.Content)
	assert.Equal(t, []string{"<message>"}, acc.Symbolic)
	assert.Equal(t, []string{"message:222/333"}, resolver.calls,
		"the channel and message IDs both come from the link")
}

func TestRoleMentionBranch(t *testing.T) {
	resolver := &fakeResolver{roles: map[string]*discordgo.Role{
		"777": {ID: "777", Name: "mods"},
	}}
	var got *discordgo.Role
	root := &Node{RoleArg: &Node{Run: func(ctx *CallContext) error {
		got, _ = ctx.RoleArg(0)
		return nil
	}}}
	ctx, _ := testContext(resolver)
	acc := NewAccumulator("x", []string{"<@&777>"})

	require.NoError(t, root.Execute([]string{"<@&777>"}, ctx, acc))
	require.NotNil(t, got)
	assert.Equal(t, "mods", got.Name)
	assert.Equal(t, []string{"<role>"}, acc.Symbolic)
	assert.Equal(t, []string{"role:guild-1/777"}, resolver.calls,
		"role lookup is scoped to the invoking guild")
}

func TestLookupFailureAbortsWalk(t *testing.T) {
	resolver := &fakeResolver{}
	leafRan := false
	root := &Node{
		ChannelArg: &Node{Run: func(*CallContext) error { leafRan = true; return nil }},
		Any:        &AnySlot{Rest: &RestLeaf{Run: func(*CallContext) error { leafRan = true; return nil }}},
	}
	ctx, _ := testContext(resolver)

	err := root.Execute([]string{"<#999>"}, ctx, NewAccumulator("x", []string{"<#999>"}))

	require.Error(t, err)
	assert.Equal(t, "Could not find a channel with ID `999`.", err.Error())
	assert.False(t, leafRan, "later branches must not be attempted after a failed lookup")
}

func TestRestLeafReceivesWholeRemainder(t *testing.T) {
	var gotJoined string
	var gotTokens []string
	root := &Node{Any: &AnySlot{Rest: &RestLeaf{Run: func(ctx *CallContext) error {
		rest, ok := ctx.RestArg()
		if !ok {
			return errors.New("missing rest arg")
		}
		gotJoined = rest.Str
		gotTokens = rest.Rest
		return nil
	}}}}
	ctx, _ := testContext(&fakeResolver{})

	err := root.Execute([]string{"a", "b", "c"}, ctx, NewAccumulator("x", []string{"a", "b", "c"}))

	require.NoError(t, err)
	assert.Equal(t, "a b c", gotJoined)
	assert.Equal(t, []string{"a", "b", "c"}, gotTokens)
}

func TestRestLeafMetadataOverride(t *testing.T) {
	root := &Node{Any: &AnySlot{Rest: &RestLeaf{
		Permission: Level(1),
		Run:        func(*CallContext) error { return nil },
	}}}
	ctx, _ := testContext(&fakeResolver{})
	ctx.Level = 0
	ctx.LevelName = func(l int) string { return strconv.Itoa(l) }

	err := root.Execute([]string{"x"}, ctx, NewAccumulator("x", []string{"x"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission level")
}

func TestAnyNodeBranchPushesRawToken(t *testing.T) {
	var got string
	anyNode := &Node{Run: func(ctx *CallContext) error {
		got = ctx.Args[0].Str
		return nil
	}}
	root := &Node{Any: &AnySlot{Node: anyNode}}
	ctx, _ := testContext(&fakeResolver{})

	require.NoError(t, root.Execute([]string{"raw-token"}, ctx, NewAccumulator("x", []string{"raw-token"})))
	assert.Equal(t, "raw-token", got)
}

func TestNumberBranch(t *testing.T) {
	t.Run("doubling leaf", func(t *testing.T) {
		root := &Node{NumberArg: &Node{Run: func(ctx *CallContext) error {
			value, _ := ctx.Number(0)
			return ctx.Send(strconv.FormatFloat(value*2, 'f', -1, 64))
		}}}
		ctx, sent := testContext(&fakeResolver{})

		require.NoError(t, root.Execute([]string{"7"}, ctx, NewAccumulator("x", []string{"7"})))
		assert.Equal(t, []string{"14"}, *sent)
	})

	t.Run("Infinity does not match", func(t *testing.T) {
		root := &Node{NumberArg: &Node{Run: func(*CallContext) error { return nil }}}
		ctx, _ := testContext(&fakeResolver{})

		err := root.Execute([]string{"Infinity"}, ctx, NewAccumulator("x", []string{"Infinity"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Infinity")
	})
}

func TestNoMatchEchoesTokenAndHeader(t *testing.T) {
	root := &Node{}
	ctx, _ := testContext(&fakeResolver{})

	err := root.Execute([]string{"frobnicate"}, ctx, NewAccumulator("root", []string{"frobnicate"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
	assert.Contains(t, err.Error(), "root")
}

func TestSymbolicTrailInNoMatch(t *testing.T) {
	root := &Node{NumberArg: &Node{}}
	ctx, _ := testContext(&fakeResolver{})

	err := root.Execute([]string{"5", "bogus"}, ctx, NewAccumulator("calc", []string{"5", "bogus"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calc <number>")
	assert.Contains(t, err.Error(), "bogus")
}

func TestIDBranchDispatch(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*discordgo.User{
		"123456789012345678": {ID: "123456789012345678", Username: "target"},
	}}
	var got *discordgo.User
	root := &Node{
		IDArg:     &Node{Run: func(ctx *CallContext) error { got, _ = ctx.UserArg(0); return nil }},
		IDArgKind: IDUser,
	}
	ctx, _ := testContext(resolver)

	require.NoError(t, root.Execute([]string{"123456789012345678"}, ctx, NewAccumulator("x", nil)))
	require.NotNil(t, got)
	assert.Equal(t, "target", got.Username)
}

func TestRoleBranchOutsideGuild(t *testing.T) {
	root := &Node{
		Channel: In(ChannelDM),
		RoleArg: &Node{Run: func(*CallContext) error { return nil }},
	}
	ctx, _ := testContext(&fakeResolver{})
	ctx.GuildID = ""
	ctx.Member = nil

	err := root.Execute([]string{"<@&123>"}, ctx, NewAccumulator("x", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server")
}

func TestEmoteBranchNotImplemented(t *testing.T) {
	root := &Node{EmoteArg: &Node{Run: func(*CallContext) error { return nil }}}
	ctx, _ := testContext(&fakeResolver{})

	err := root.Execute([]string{"<:smile:123456789>"}, ctx, NewAccumulator("x", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")
}

func TestHandlerFailureConverted(t *testing.T) {
	t.Run("returned error", func(t *testing.T) {
		root := &Node{Run: func(*CallContext) error { return errors.New("boom") }}
		ctx, _ := testContext(&fakeResolver{})

		err := root.Execute(nil, ctx, NewAccumulator("broken", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("panic", func(t *testing.T) {
		root := &Node{Run: func(*CallContext) error { panic("kaboom") }}
		ctx, _ := testContext(&fakeResolver{})

		err := root.Execute(nil, ctx, NewAccumulator("broken", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kaboom")
	})
}

func TestDescentOrderOfArgs(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*discordgo.User{"111": {ID: "111"}}}
	var kinds []ArgKind
	leaf := &Node{Run: func(ctx *CallContext) error {
		for _, a := range ctx.Args {
			kinds = append(kinds, a.Kind)
		}
		return nil
	}}
	root := &Node{UserArg: &Node{NumberArg: leaf}}
	ctx, _ := testContext(resolver)

	require.NoError(t, root.Execute([]string{"<@111>", "3"}, ctx, NewAccumulator("x", nil)))
	assert.Equal(t, []ArgKind{ArgUser, ArgNumber}, kinds)
}
