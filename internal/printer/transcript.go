package printer

import (
	"fmt"
	"strings"

	"github.com/hay-kot/broadcast/internal/core/config"
	"github.com/hay-kot/broadcast/internal/core/messaging"
	"github.com/hay-kot/broadcast/internal/core/scenario"
	"github.com/hay-kot/broadcast/internal/styles"
)

const dividerWidth = 60

// Banner prints the ASCII banner.
func (p *Printer) Banner() {
	p.write(p.styles.Banner.Render(styles.Banner))
	p.write("")
}

// Divider prints a horizontal rule.
func (p *Printer) Divider() {
	p.write(p.styles.Divider.Render(strings.Repeat("─", dividerWidth)))
}

// Message prints a rendered message with an optional prefix.
func (p *Printer) Message(prefix string, msg messaging.Message) {
	line := fmt.Sprintf("%s %s %s: %s",
		p.styles.Time.Render("["+msg.Timestamp.Format(messaging.TimeLayout)+"]"),
		p.styles.Sender.Render(msg.Sender),
		p.styles.Type.Render("("+msg.Type+")"),
		p.styles.Content.Render(msg.Content),
	)
	p.write(prefix + line)
}

// Transcript prints the result of a scenario run. The sections printed are
// controlled by the transcript config.
func (p *Printer) Transcript(res *scenario.Result, tc config.TranscriptConfig) {
	p.Section(res.Name)
	p.write(p.styles.Muted.Render("run " + res.RunID))
	p.write("")

	if tc.Interests() {
		p.interests(res)
	}
	if tc.Activity() {
		p.activity(res)
	}

	p.inboxes(res)

	if tc.History() {
		p.history(res)
	}
}

func (p *Printer) interests(res *scenario.Result) {
	p.Section("Interests")
	for _, sub := range res.Subscribers {
		interests := p.styles.Muted.Render("everything")
		if len(sub.Interests) > 0 {
			interests = strings.Join(sub.Interests, ", ")
		}
		p.write(fmt.Sprintf("  %s: %s", sub.Name, interests))
	}
	p.write("")
}

func (p *Printer) activity(res *scenario.Result) {
	p.Section("Activity")
	if len(res.Events) == 0 {
		p.write("  " + p.styles.Muted.Render("no steps"))
		p.write("")
		return
	}

	for _, ev := range res.Events {
		if ev.Label != "" {
			p.write(p.styles.Label.Render(ev.Label))
		}

		switch ev.Kind {
		case scenario.KindPublish:
			p.Message("  "+ev.Publisher+" published ", *ev.Message)
			if len(ev.Recipients) == 0 {
				p.write("    " + p.styles.Muted.Render("filtered by every subscriber"))
			}
			for _, name := range ev.Recipients {
				p.write("    " + Mail + " " + p.styles.Recipient.Render(name) + " received")
			}
		case scenario.KindSubscribe:
			p.write(fmt.Sprintf("  %s subscribed to %s", ev.Subscriber, ev.Publisher))
		case scenario.KindUnsubscribe:
			if ev.Removed {
				p.write(fmt.Sprintf("  %s unsubscribed from %s", ev.Subscriber, ev.Publisher))
			} else {
				p.write(fmt.Sprintf("  %s was not subscribed to %s", ev.Subscriber, ev.Publisher))
			}
		case scenario.KindInterest:
			p.write(fmt.Sprintf("  %s now listens for %q", ev.Subscriber, ev.Type))
		}
	}
	p.write("")
}

func (p *Printer) inboxes(res *scenario.Result) {
	p.Section("Received Messages")
	for _, sub := range res.Subscribers {
		p.write(p.styles.Label.Render(sub.Name))
		if len(sub.Inbox) == 0 {
			p.write("  " + p.styles.Muted.Render("no messages received"))
			continue
		}
		for _, msg := range sub.Inbox {
			p.Message("  ", msg)
		}
	}
	p.write("")
}

func (p *Printer) history(res *scenario.Result) {
	p.Section("Publisher History")
	for _, pub := range res.Publishers {
		p.write(p.styles.Label.Render(pub.Name))
		if len(pub.History) == 0 {
			p.write("  " + p.styles.Muted.Render("nothing published"))
			continue
		}
		for _, line := range pub.History {
			p.write("  " + line)
		}
	}
	p.write("")
}
