package command

// Root defaults for metadata inheritance: any node that does not override a
// field resolves to these.
const (
	DefaultPermission = 0
	DefaultNSFW       = false
	DefaultChannel    = ChannelText
)

// Accumulator is the mutable record threaded through one Execute walk. Nodes
// overwrite its metadata fields top-down, so the values at the terminal leaf
// are the effective, inherited ones. Symbolic collects the placeholder trail
// (`<channel>`, `<number>`, literal names) used in error messages.
//
// One Accumulator serves exactly one invocation and is discarded afterwards.
type Accumulator struct {
	Permission int
	NSFW       bool
	Channel    ChannelType

	Header       string
	OriginalArgs []string
	Args         []string
	Symbolic     []string
}

// NewAccumulator returns an accumulator initialized with the root defaults
// for the given top-level command name and raw argument list.
func NewAccumulator(header string, args []string) *Accumulator {
	return &Accumulator{
		Permission:   DefaultPermission,
		NSFW:         DefaultNSFW,
		Channel:      DefaultChannel,
		Header:       header,
		OriginalArgs: args,
		Args:         args,
	}
}

// CommandLine reconstructs the symbolic command line for error and template
// text: the header followed by the placeholder trail.
func (a *Accumulator) CommandLine() string {
	line := a.Header
	for _, sym := range a.Symbolic {
		line += " " + sym
	}
	return line
}
