package command

// Info describes a resolved point in the command tree: the node (or rest
// leaf) the placeholder path landed on, its inherited metadata, and what can
// follow it. Produced by ResolveInfo for help/usage rendering; never used
// during dispatch.
type Info struct {
	Node *Node
	Rest *RestLeaf // set instead of further branches when resolved via <...>

	Permission int
	NSFW       bool
	Channel    ChannelType

	Description string
	Usage       string

	// Trail is the typed-argument path consumed to reach this point.
	Trail []string

	// Subcommands holds the direct named children, aliases folded out.
	Subcommands map[string]*Node

	// Branches lists the typed branches present here, as canonical
	// placeholder labels in match-priority order.
	Branches []string
}

// ResolveInfo mirrors Execute over a token stream of placeholder markers
// (`<channel>`, `<number>`, `<id>`, `<...>`, or literal subcommand names)
// and returns a description of the resolved node instead of running it.
// It shares Execute's branch priority; the two walks must stay in lockstep
// when a branch kind is added.
func (n *Node) ResolveInfo(tokens []string, header string) (*Info, error) {
	acc := NewAccumulator(header, tokens)
	return n.resolveInfo(tokens, acc)
}

func (n *Node) resolveInfo(tokens []string, acc *Accumulator) (*Info, error) {
	n.applyMeta(acc)
	acc.Args = tokens

	if len(tokens) == 0 {
		return &Info{
			Node:        n,
			Permission:  acc.Permission,
			NSFW:        acc.NSFW,
			Channel:     acc.Channel,
			Description: n.Description,
			Usage:       n.Usage,
			Trail:       acc.Symbolic,
			Subcommands: n.Subcommands(),
			Branches:    n.branchLabels(),
		}, nil
	}

	head, rest := tokens[0], tokens[1:]

	if sub, ok := n.Lookup(head); ok {
		acc.Symbolic = append(acc.Symbolic, head)
		return sub.resolveInfo(rest, acc)
	}

	if n.ChannelArg != nil && head == "<channel>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.ChannelArg.resolveInfo(rest, acc)
	}
	if n.MessageArg != nil && head == "<message>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.MessageArg.resolveInfo(rest, acc)
	}
	if n.UserArg != nil && head == "<user>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.UserArg.resolveInfo(rest, acc)
	}
	if n.RoleArg != nil && head == "<role>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.RoleArg.resolveInfo(rest, acc)
	}
	if n.EmoteArg != nil && head == "<emote>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.EmoteArg.resolveInfo(rest, acc)
	}
	if n.IDArg != nil && head == "<id>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.IDArg.resolveInfo(rest, acc)
	}
	if n.NumberArg != nil && head == "<number>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.NumberArg.resolveInfo(rest, acc)
	}
	if n.Any != nil && n.Any.Node != nil && head == "<any>" {
		acc.Symbolic = append(acc.Symbolic, head)
		return n.Any.Node.resolveInfo(rest, acc)
	}
	if n.Any != nil && n.Any.Rest != nil && head == "<...>" {
		// Rest leaf: terminal state, nothing can follow it.
		leaf := n.Any.Rest
		leaf.applyMeta(acc)
		acc.Symbolic = append(acc.Symbolic, head)
		return &Info{
			Rest:        leaf,
			Permission:  acc.Permission,
			NSFW:        acc.NSFW,
			Channel:     acc.Channel,
			Description: leaf.Description,
			Trail:       acc.Symbolic,
		}, nil
	}

	acc.Symbolic = append(acc.Symbolic, head)
	return nil, noMatch(acc)
}

// branchLabels enumerates present typed branches with their canonical
// placeholder labels, in the same order Execute tries them.
func (n *Node) branchLabels() []string {
	var labels []string
	if n.ChannelArg != nil {
		labels = append(labels, "<channel>")
	}
	if n.MessageArg != nil {
		labels = append(labels, "<message>")
	}
	if n.UserArg != nil {
		labels = append(labels, "<user>")
	}
	if n.RoleArg != nil {
		labels = append(labels, "<role>")
	}
	if n.EmoteArg != nil {
		labels = append(labels, "<emote>")
	}
	if n.IDArg != nil {
		labels = append(labels, "<id>")
	}
	if n.NumberArg != nil {
		labels = append(labels, "<number>")
	}
	if n.Any != nil && n.Any.Node != nil {
		labels = append(labels, "<any>")
	}
	if n.Any != nil && n.Any.Rest != nil {
		labels = append(labels, "<...>")
	}
	return labels
}
