package domain

type ChannelType string

const (
	GuildChannel  ChannelType = "guild"
	DirectChannel ChannelType = "direct"
)

type Attachment struct {
	ID          string
	URL         string
	Filename    string
	ContentType string
	Size        int
}

// Message is a read-only snapshot of one inbound event. CommandArguments is only populated on the copy handed
// to handlers, after the prefix and command name have been stripped.
type Message struct {
	ID               string
	GuildID          string
	ChannelID        string
	ChannelType      ChannelType
	AuthorID         string
	AuthorName       string
	AuthorIsBot      bool
	Content          string
	Attachments      []Attachment
	CommandArguments []string
}

// InGuild reports whether the message was sent in a guild-bound channel.
func (m *Message) InGuild() bool {
	return m.GuildID != "" && m.ChannelType != DirectChannel
}

// WithArguments returns a copy of the message carrying the given command arguments.
func (m *Message) WithArguments(args []string) *Message {
	c := *m
	c.CommandArguments = make([]string, len(args))
	copy(c.CommandArguments, args)
	return &c
}

type Emoji struct {
	Yes   string
	No    string
	Think string
	Love  string
}

type Identity struct {
	Name    string
	Version string
	Emoji   Emoji
}

type CommandInfo struct {
	Names       []string
	Description string
}

// State is the per-dispatch view of the bot handed to every handler. It is built fresh for each dispatch.
type State struct {
	Identity    Identity
	SelfID      string
	Prefix      string
	CommandName string
	Catalog     []CommandInfo
}

type EmbedField struct {
	Name  string
	Value string
}

type Embed struct {
	Title       string
	Description string
	Fields      []EmbedField
	Footer      string
}

const PointsPerLevel = 100

type MemberLevel struct {
	GuildID string
	UserID  string
	Points  int
	Level   int
}

func LevelForPoints(points int) int {
	if points < 0 {
		return 0
	}

	return points / PointsPerLevel
}

type CommandUsage struct {
	GuildID string
	Command string
	Uses    int
}

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

type Prompt struct {
	Prompt   string
	Author   Author
	Model    string
	ImageURL string
}

type ModelResponse struct {
	Response string
	Metadata ResponseMetadata
}

type ResponseMetadata struct {
	Model            string
	CompletionTokens int
	TotalTokens      int
}
