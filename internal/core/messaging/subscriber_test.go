package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriber_EmptyInterestsReceiveAll(t *testing.T) {
	sub := NewSubscriber("listener")

	for _, typ := range []string{"Haber", "Spor", "Teknoloji", ""} {
		require.NoError(t, sub.Deliver(NewMessage("x", typ, "pub")))
	}

	assert.Len(t, sub.ReceivedMessages(), 4)
}

func TestSubscriber_Accepts(t *testing.T) {
	tests := []struct {
		name      string
		interests []string
		typ       string
		want      bool
	}{
		{name: "no interests accepts anything", interests: nil, typ: "Spor", want: true},
		{name: "member accepted", interests: []string{"Haber"}, typ: "Haber", want: true},
		{name: "non member dropped", interests: []string{"Teknoloji"}, typ: "Haber", want: false},
		{name: "one of several", interests: []string{"Spor", "Haber"}, typ: "Spor", want: true},
		{name: "case sensitive", interests: []string{"Haber"}, typ: "haber", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := NewSubscriber("s")
			for _, i := range tt.interests {
				sub.AddInterest(i)
			}

			assert.Equal(t, tt.want, sub.Accepts(tt.typ))

			require.NoError(t, sub.Deliver(NewMessage("x", tt.typ, "pub")))
			if tt.want {
				assert.Len(t, sub.ReceivedMessages(), 1)
			} else {
				assert.Empty(t, sub.ReceivedMessages())
			}
		})
	}
}

func TestSubscriber_AddInterestIdempotent(t *testing.T) {
	once := NewSubscriber("once")
	once.AddInterest("Spor")

	twice := NewSubscriber("twice")
	twice.AddInterest("Spor")
	twice.AddInterest("Spor")

	assert.Equal(t, once.Interests(), twice.Interests())
	assert.Equal(t, []string{"Spor"}, twice.Interests())
}

func TestSubscriber_InterestsSorted(t *testing.T) {
	sub := NewSubscriber("s")
	sub.AddInterest("Spor")
	sub.AddInterest("Haber")

	assert.Equal(t, []string{"Haber", "Spor"}, sub.Interests())
}

func TestSubscriber_ReceivedMessagesIsCopy(t *testing.T) {
	sub := NewSubscriber("s")
	require.NoError(t, sub.Deliver(NewMessage("original", "t", "pub")))

	inbox := sub.ReceivedMessages()
	inbox[0].Content = "tampered"

	assert.Equal(t, "original", sub.ReceivedMessages()[0].Content)
}

func TestSubscriber_UnsubscribeFrom(t *testing.T) {
	p := NewPublisher("pub")
	sub := NewSubscriber("s")

	sub.SubscribeTo(p)
	_, err := p.Publish("before", "t")
	require.NoError(t, err)

	assert.True(t, sub.UnsubscribeFrom(p))
	_, err = p.Publish("after", "t")
	require.NoError(t, err)

	inbox := sub.ReceivedMessages()
	require.Len(t, inbox, 1)
	assert.Equal(t, "before", inbox[0].Content)

	assert.False(t, sub.UnsubscribeFrom(p), "second unsubscribe finds nothing")
}

func TestScenarioA_MatchingInterestReceives(t *testing.T) {
	haber := NewPublisher("Haber TV")
	ali := NewSubscriber("Ali")
	ali.AddInterest("Haber")
	ali.SubscribeTo(haber)

	_, err := haber.Publish("X", "Haber")
	require.NoError(t, err)

	inbox := ali.ReceivedMessages()
	require.Len(t, inbox, 1)
	assert.Equal(t, "X", inbox[0].Content)
	assert.Equal(t, "Haber TV", inbox[0].Sender)
}

func TestScenarioB_OtherInterestFiltered(t *testing.T) {
	haber := NewPublisher("Haber TV")
	mehmet := NewSubscriber("Mehmet")
	mehmet.AddInterest("Teknoloji")
	mehmet.SubscribeTo(haber)

	_, err := haber.Publish("Y", "Haber")
	require.NoError(t, err)

	assert.Empty(t, mehmet.ReceivedMessages())
}

func TestScenarioC_TwoPublishersOneSubscriber(t *testing.T) {
	haber := NewPublisher("Haber TV")
	spor := NewPublisher("Spor Kanalı")

	ayse := NewSubscriber("Ayşe")
	ayse.AddInterest("Spor")
	ayse.AddInterest("Haber")
	ayse.SubscribeTo(haber)
	ayse.SubscribeTo(spor)

	_, err := haber.Publish("news", "Haber")
	require.NoError(t, err)
	_, err = spor.Publish("match", "Spor")
	require.NoError(t, err)

	inbox := ayse.ReceivedMessages()
	require.Len(t, inbox, 2)
	assert.Equal(t, "news", inbox[0].Content)
	assert.Equal(t, "Haber TV", inbox[0].Sender)
	assert.Equal(t, "match", inbox[1].Content)
	assert.Equal(t, "Spor Kanalı", inbox[1].Sender)
}

func TestScenarioD_DuplicateSubscriptionDuplicatesDelivery(t *testing.T) {
	haber := NewPublisher("Haber TV")
	ali := NewSubscriber("Ali")
	ali.AddInterest("Haber")

	ali.SubscribeTo(haber)
	ali.SubscribeTo(haber)
	assert.Equal(t, 2, haber.Listeners())

	msg, err := haber.Publish("twice", "Haber")
	require.NoError(t, err)

	inbox := ali.ReceivedMessages()
	require.Len(t, inbox, 2)
	assert.Equal(t, msg, inbox[0])
	assert.Equal(t, msg, inbox[1])

	// one unsubscribe removes one registration
	assert.True(t, ali.UnsubscribeFrom(haber))
	_, err = haber.Publish("once", "Haber")
	require.NoError(t, err)
	assert.Len(t, ali.ReceivedMessages(), 3)
}
