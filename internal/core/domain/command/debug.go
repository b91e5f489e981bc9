package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog"
)

type Debug struct {
	textSender port.TextSender
	names      []string
}

func NewDebug(sender port.TextSender, names ...string) *Debug {
	return &Debug{textSender: sender, names: names}
}

func (d *Debug) Names() []string {
	return d.names
}

func (d *Debug) Description() string {
	return "Shows runtime information of the bot process."
}

const kb = 1024
const debugTemplate = `version: %s
allocated mem: %d KB
goroutines running: %d
heap: %d KB
stack: %d KB
compiled with %s for %s-%s
`
const metricCount = 3

func (d *Debug) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	l := zerolog.Ctx(ctx)

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	goos, goarch := runtime.GOOS, runtime.GOARCH
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	err := d.textSender.SendMessage(ctx, message.ChannelID,
		fmt.Sprintf(
			debugTemplate,
			state.Identity.Version,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
